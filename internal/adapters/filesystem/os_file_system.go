package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"kjob/internal/ports"
)

type OsFileSystem struct{}

func ProvideOsFileSystem() *OsFileSystem {
	return &OsFileSystem{}
}

func (f *OsFileSystem) ReadFile(path string) ([]byte, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(resolved)
}

func (f *OsFileSystem) WriteFile(path string, content []byte, accessMode ports.AccessMode) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := f.EnsureDirExists(resolved); err != nil {
		return fmt.Errorf("failed to ensure directory exists: %w", err)
	}
	if err := os.WriteFile(resolved, content, getOsFileModeForAccessMode(accessMode)); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// EnsureDirExists creates the parent directory of path.
func (f *OsFileSystem) EnsureDirExists(path string) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), getOsFileModeForAccessMode(ports.ReadWriteExecute)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

func (f *OsFileSystem) FileExists(path string) (bool, error) {
	resolved, err := expandPath(path)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(resolved)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists: %w", err)
}

// expandPath replaces a leading ~ with the user's home directory. Both / and
// \ are accepted after the tilde.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path must not be empty")
	}
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~\\") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	rest := strings.ReplaceAll(path[2:], "\\", "/")
	return filepath.Join(home, filepath.FromSlash(rest)), nil
}

func getOsFileModeForAccessMode(accessMode ports.AccessMode) os.FileMode {
	switch accessMode {
	case ports.ReadWrite:
		return 0600
	case ports.ReadWriteExecute:
		return 0700
	case ports.ReadAllWriteOwner:
		return 0644
	default:
		return 0600
	}
}
