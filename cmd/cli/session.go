package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ---- config/session store ----

type sessionFile struct {
	Server   string    `json:"server"`
	Username string    `json:"username"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

var errNoSession = errors.New("not logged in (run: redditctl login)")

var nowFunc = time.Now

func cfgDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "redditctl")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "redditctl")
}

func sessionPath() string { return filepath.Join(cfgDir(), "session.json") }

func saveSession(s sessionFile) error {
	if err := os.MkdirAll(cfgDir(), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(sessionPath(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// loadSession returns the stored session for server. A session saved for another server is ignored.
func loadSession(server string) (sessionFile, error) {
	b, err := os.ReadFile(sessionPath())
	if errors.Is(err, os.ErrNotExist) {
		return sessionFile{}, errNoSession
	}
	if err != nil {
		return sessionFile{}, err
	}
	var s sessionFile
	if err := json.Unmarshal(b, &s); err != nil {
		return sessionFile{}, err
	}
	if s.Token == "" || s.Server != server {
		return sessionFile{}, errNoSession
	}
	return s, nil
}

func clearSession() error {
	err := os.Remove(sessionPath())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
