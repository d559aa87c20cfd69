// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package formats

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationFile matches every *ConfigurationFileError.
	ErrConfigurationFile = errors.New("configuration file error")
	// ErrFormatNotRecognized is returned when no format claims a file extension.
	ErrFormatNotRecognized = errors.New("format not recognized")
	// ErrNotFound is returned when a local configuration path does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrNotRegularFile is returned when a local configuration path is not a regular file.
	ErrNotRegularFile = errors.New("not a regular file")
	// ErrFetch is returned when a remote configuration cannot be downloaded.
	ErrFetch = errors.New("cannot fetch remote file")
	// ErrNoParser is returned when no parser is registered for a format.
	ErrNoParser = errors.New("no parser registered for format")
	// ErrParse is returned when a document cannot be decoded.
	ErrParse = errors.New("cannot parse document")
	// ErrCoerce is returned when a string value cannot be converted to its parameter kind.
	ErrCoerce = errors.New("cannot coerce value")
	// ErrUnsupportedType is returned when a parameter kind has no string coercion.
	ErrUnsupportedType = errors.New("unsupported type for coercion")
	// ErrInterpolation is returned when an INI value reference cannot be expanded.
	ErrInterpolation = errors.New("interpolation failed")
)

// ConfigurationFileError reports a configuration location that cannot be
// read, recognised or parsed.
type ConfigurationFileError struct {
	// Location is the absolute path or URL that failed.
	Location string
	Err      error
}

func (e *ConfigurationFileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Location, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ConfigurationFileError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrConfigurationFile) match.
func (e *ConfigurationFileError) Is(target error) bool {
	return target == ErrConfigurationFile
}

func fileError(location string, err error) error {
	return &ConfigurationFileError{Location: location, Err: err}
}
