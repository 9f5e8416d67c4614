package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// SecretReader reads Docker-style secrets, one file per secret.
type SecretReader struct {
	Dir string
}

// Read returns the trimmed content of the named secret file.
// Missing and empty files are errors; there is no env var fallback.
func (r SecretReader) Read(name string) (string, error) {
	dir := r.Dir
	if dir == "" {
		dir = "/run/secrets"
	}
	path := filepath.Join(dir, name)
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", path, err)
	}
	secret := strings.TrimSpace(string(b))
	if secret == "" {
		return "", fmt.Errorf("secret file %s is empty", path)
	}
	return secret, nil
}

// ReadOptional returns the secret or an empty string when it cannot be read.
func (r SecretReader) ReadOptional(name string) string {
	secret, err := r.Read(name)
	if err != nil {
		log.Printf("Optional secret %q not loaded: %v", name, err)
		return ""
	}
	return secret
}
