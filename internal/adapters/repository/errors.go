package repository

import "errors"

// Sentinel kinds for CSV store errors.
var (
	// ErrFileProcessing covers missing, empty, unreadable and unwritable files.
	ErrFileProcessing = errors.New("file processing failed")
	// ErrNoValidParticipants is returned, wrapped with ErrFileProcessing, when
	// every participant row was rejected.
	ErrNoValidParticipants = errors.New("no valid participants found")
)
