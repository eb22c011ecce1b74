package credstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the name of the credential file inside the config directory.
const DefaultFileName = "credential"

// FileStore persists the credential in a single file under the user's config
// directory. The file is written with 0600 permissions; the token is the
// file's entire content.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed store at the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the default credential file location
// (e.g., ~/.config/ticketctl/credential on Linux).
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "ticketctl", DefaultFileName), nil
}

// Load reads the stored credential. A missing file means no credential.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("unable to read credential file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the credential, creating the parent directory if needed.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return fmt.Errorf("unable to create credential directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), os.FileMode(0600)); err != nil {
		return fmt.Errorf("unable to write credential file: %w", err)
	}
	return nil
}

// Clear removes the credential file. Removing a missing file is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("unable to remove credential file: %w", err)
	}
	return nil
}
