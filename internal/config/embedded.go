package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/DavidTaylor96/repo-anylaszer-sub001/internal/loggy"
)

//go:embed env.sample
var sampleEnv []byte

// EnvFileName is the name of the settings file inside the config directory
const EnvFileName = ".env"

// SampleEnv returns a copy of the documented sample settings file
func SampleEnv() []byte {
	out := make([]byte, len(sampleEnv))
	copy(out, sampleEnv)
	return out
}

// SetupConfigDirectory creates configDir and writes the sample .env into it.
// An existing .env is kept unless replace is set, in which case it is backed up first.
// It returns the path of the .env file.
func SetupConfigDirectory(configDir string, replace bool) (string, error) {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	envPath := filepath.Join(configDir, EnvFileName)
	written, backup, err := WriteSampleEnv(envPath, replace)
	if err != nil {
		return envPath, err
	}

	switch {
	case backup != "":
		loggy.Info("Replaced settings file", "path", envPath, "backup", backup)
	case written:
		loggy.Info("Wrote sample settings file", "path", envPath)
	default:
		loggy.Debug("Keeping existing settings file", "path", envPath)
	}
	return envPath, nil
}

// WriteSampleEnv writes the sample settings to target. When target exists it is
// left alone unless overwrite is set; an overwritten file is first copied to a
// dated .bak next to it, whose path is returned.
func WriteSampleEnv(target string, overwrite bool) (written bool, backup string, err error) {
	existing, err := os.ReadFile(target)
	switch {
	case err == nil && !overwrite:
		return false, "", nil
	case err == nil:
		backup = fmt.Sprintf("%s.%s.bak", target, time.Now().Format("2006-01-02"))
		if err := os.WriteFile(backup, existing, 0600); err != nil {
			return false, "", fmt.Errorf("writing backup: %w", err)
		}
	case !os.IsNotExist(err):
		return false, "", fmt.Errorf("reading %s: %w", target, err)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return false, backup, fmt.Errorf("creating %s: %w", filepath.Dir(target), err)
	}
	if err := os.WriteFile(target, sampleEnv, 0644); err != nil {
		return false, backup, fmt.Errorf("writing %s: %w", target, err)
	}
	return true, backup, nil
}
