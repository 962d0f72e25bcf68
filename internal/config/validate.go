package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyAppMarker indicates a missing app marker file name
	ErrEmptyAppMarker = errors.New("empty app marker")

	// ErrEmptyExtensions indicates no source extensions are configured
	ErrEmptyExtensions = errors.New("empty scan extensions")

	// ErrInvalidExtension indicates an extension without a leading dot
	ErrInvalidExtension = errors.New("invalid extension")

	// ErrEmptyOutputPath indicates a missing output path
	ErrEmptyOutputPath = errors.New("empty output path")

	// ErrInvalidDebounce indicates a non-positive watch debounce
	ErrInvalidDebounce = errors.New("invalid watch debounce")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Discovery.AppMarker == "" {
		errs = append(errs, ErrEmptyAppMarker)
	}

	if len(cfg.Scan.Extensions) == 0 {
		errs = append(errs, ErrEmptyExtensions)
	}
	for _, ext := range cfg.Scan.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("%w: %q must start with a dot", ErrInvalidExtension, ext))
		}
	}

	if cfg.Output.Path == "" {
		errs = append(errs, ErrEmptyOutputPath)
	}

	if cfg.Watch.DebounceMs <= 0 {
		errs = append(errs, ErrInvalidDebounce)
	}

	return combineErrors(errs)
}

// combineErrors combines multiple errors into a single error message.
func combineErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Error())
	}
	return fmt.Errorf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}
