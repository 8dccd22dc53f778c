// Package repository reads and writes participants and teams as CSV files.
package repository

import "github.com/okian/teamup/pkg/logger"

// Option applies a configuration option to the CSVStore.
type Option func(*CSVStore)

// WithLogger sets the logger used for skipped-row warnings.
func WithLogger(log logger.Logger) Option {
	return func(s *CSVStore) {
		if log != nil {
			s.logger = log
		}
	}
}
