// Package utils holds small host-filesystem helpers for the front ends.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveScript turns a user-supplied script path into an absolute one,
// verifying it names a regular file so the caller's os.Open failure mode is
// a real read error, not a typo'd path.
func ResolveScript(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%s is a directory, not a script", abs)
	}
	return abs, nil
}
