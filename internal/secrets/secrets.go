// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads private settings from a directory of plain-text
// files. Each file is one secret: the filename is the key and the trimmed
// contents are the value.
//
// Supported key files: contact-email.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultDir is the secrets directory read at startup.
const DefaultDir = ".secrets/"

// ContactEmail is the key of the address sent to Europe PMC with each
// request so the service can reach heavy users.
const ContactEmail = "contact-email"

// Secrets maps key file names to their values.
type Secrets map[string]string

// Load reads all files in dir. A missing directory is not an error and
// yields an empty set. Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (Secrets, error) {
	if log == nil {
		log = zap.NewNop()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("could not read secret", zap.String("key", name), zap.Error(err))
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns the value stored for key, or fallback when the key is
// absent.
func (s Secrets) Get(key, fallback string) string {
	if v, ok := s[key]; ok {
		return v
	}
	return fallback
}

// UserAgent appends the contact email, when present, to base in the
// "(mailto:...)" form polite API clients use.
func (s Secrets) UserAgent(base string) string {
	email := s.Get(ContactEmail, "")
	if email == "" {
		return base
	}
	return fmt.Sprintf("%s (mailto:%s)", base, email)
}
