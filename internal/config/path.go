package config

import (
	"errors"
	"os"
	"path/filepath"
)

const (
	appDirName  = "ipcon" // directory name under os.UserConfigDir
	configName  = "config.json"
	defaultBase = "https://www.instapaper.com"

	DefaultBookmarkLimit = 25
	DefaultWrapWidth     = 80
)

func DefaultBaseURL() string { return defaultBase }

func DefaultDir() (string, error) {
	d, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	if d == "" {
		return "", errors.New("os.UserConfigDir() returned empty string")
	}
	return filepath.Join(d, appDirName), nil
}

func DefaultConfigPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName), nil
}

func LogDir() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}
