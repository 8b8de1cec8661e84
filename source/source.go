// Package source loads the markup and catalog texts the audit runs on.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrUnavailable is wrapped by every error returned when input text
// cannot be obtained.
var ErrUnavailable = errors.New("input unavailable")

// Stdin is the path that selects standard input.
const Stdin = "-"

// Load returns the contents of path, or of r when path is Stdin.
func Load(path string, stdin io.Reader) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no path given", ErrUnavailable)
	}

	if path == Stdin {
		if stdin == nil {
			return "", fmt.Errorf("%w: standard input not available", ErrUnavailable)
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("%w: reading standard input: %w", ErrUnavailable, err)
		}
		return string(data), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrUnavailable, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %w", ErrUnavailable, path, err)
	}
	return string(data), nil
}
