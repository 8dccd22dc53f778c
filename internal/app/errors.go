package service

import "errors"

var (
	ErrNotStarted     = errors.New("service not started")
	ErrNoParticipants = errors.New("no participants loaded")
	ErrNoFormedTeams  = errors.New("no teams have been formed")
	ErrNoDataFile     = errors.New("no participant file found")
	ErrInvalidName    = errors.New("invalid export file name")
)
