package config

import "errors"

// Validation errors returned by Config.Validate. Match with errors.Is.
var (
	ErrEmptyFormURL     = errors.New("form URL must not be empty")
	ErrEmptyFieldName   = errors.New("city and state field names must not be empty")
	ErrInvalidTimeout   = errors.New("invalid timeout: must be positive")
	ErrEmptyArchiveDir  = errors.New("archive directory must not be empty")
	ErrEmptyOutputFile  = errors.New("output file must not be empty")
	ErrInvalidSelector  = errors.New("invalid ZIP code selector")
	ErrInvalidMaxLength = errors.New("invalid max length: must be positive")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrConfigNotFound   = errors.New("configuration file not found")
)
