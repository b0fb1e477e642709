// Package session keeps the local logged-in flag that guards destructive
// commands.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the flag file created under the base directory on login.
const FileName = "session"

// ErrInvalidCredentials is returned by Login when either field is empty.
var ErrInvalidCredentials = errors.New("username and password are required")

// ErrNotLoggedIn is returned by Require when no session exists.
var ErrNotLoggedIn = errors.New("not logged in, run 'spot login' first")

// Authenticate accepts any pair of non-empty credentials.
func Authenticate(username, password string) bool {
	return strings.TrimSpace(username) != "" && strings.TrimSpace(password) != ""
}

// File stores the session flag as a file on disk.
type File struct {
	path string
}

// NewFile returns a session rooted at base.
func NewFile(base string) *File {
	return &File{path: filepath.Join(base, FileName)}
}

// Path returns the flag file location.
func (f *File) Path() string { return f.path }

// LoggedIn reports whether the flag file exists.
func (f *File) LoggedIn() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Login validates the credentials and writes the flag file. Only the user
// name and a timestamp are stored.
func (f *File) Login(username, password string, now time.Time) error {
	if !Authenticate(username, password) {
		return ErrInvalidCredentials
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("error creating session directory: %w", err)
	}
	content := fmt.Sprintf("%s\n%s\n", strings.TrimSpace(username), now.UTC().Format(time.RFC3339))
	if err := os.WriteFile(f.path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("error writing session: %w", err)
	}
	return nil
}

// Logout removes the flag file. Logging out twice is not an error.
func (f *File) Logout() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error removing session: %w", err)
	}
	return nil
}

// Require returns ErrNotLoggedIn unless a session exists.
func (f *File) Require() error {
	if !f.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}
