package tsalert

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedReport is returned when the diagnostic report cannot be
	// decoded or does not have the expected shape. It fails the whole run.
	ErrMalformedReport = errors.New("malformed report")

	// ErrNoTree marks a source unit whose text could not be parsed.
	ErrNoTree = errors.New("no syntax tree")

	// ErrLanguageNotRegistered is returned for an unknown grammar name.
	ErrLanguageNotRegistered = errors.New("language not registered")
)

// AlertError reports a failure tied to one alert.
type AlertError struct {
	Alert Alert
	Err   error
}

func (e *AlertError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %v", e.Alert.File, e.Alert.Line, e.Alert.Column, e.Err)
}

func (e *AlertError) Unwrap() error {
	return e.Err
}
