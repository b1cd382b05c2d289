package client

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var fingerprintPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// NewFingerprint returns a fresh opaque visitor id: 32 lowercase hex characters.
func NewFingerprint() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// LoadFingerprint returns the visitor id stored at path, creating and
// persisting a new one when the file is missing or holds something else.
func LoadFingerprint(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		if fp := strings.TrimSpace(string(raw)); fingerprintPattern.MatchString(fp) {
			return fp, nil
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	fp := NewFingerprint()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(fp+"\n"), 0o600); err != nil {
		return "", err
	}
	return fp, nil
}
