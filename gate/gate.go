// Package gate guards the command line with a single shared password.
//
// A successful Unlock sets a session flag file, that lasts until Lock or until the
// temporary directory is cleaned.
package gate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Gate compares passwords in memory against a single configured password.
type Gate struct {
	password string
	session  string
}

// DefaultSessionFile returns the session flag file of the current user.
func DefaultSessionFile() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("hisab-session-%d", os.Getuid()))
}

// New returns a gate for password. An empty sessionFile means DefaultSessionFile.
// An empty password disables the gate.
func New(password, sessionFile string) *Gate {
	if sessionFile == "" {
		sessionFile = DefaultSessionFile()
	}
	return &Gate{password: password, session: sessionFile}
}

// Enabled reports whether a password is configured.
func (g *Gate) Enabled() bool { return g.password != "" }

// Unlock opens the session when pw is the password.
func (g *Gate) Unlock(pw string) bool {
	if !g.Enabled() {
		return true
	}
	if pw != g.password {
		return false
	}
	return os.WriteFile(g.session, []byte("unlocked\n"), 0o600) == nil
}

// Unlocked reports whether the session is open.
func (g *Gate) Unlocked() bool {
	if !g.Enabled() {
		return true
	}
	_, err := os.Stat(g.session)
	return err == nil
}

// Lock closes the session.
func (g *Gate) Lock() error {
	err := os.Remove(g.session)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
