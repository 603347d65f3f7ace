package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PathValidator confines file access to the configured document directory.
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator creates a path validator for the given directory.
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	// Use the directory as provided - don't require it to exist
	// This allows for placeholders and directories that may be created later
	return &PathValidator{
		configuredDirectory: configuredDirectory,
	}, nil
}

// ValidatePath checks if a path is within the configured directory.
func (v *PathValidator) ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	// If configured directory doesn't exist yet, skip validation
	if _, err := os.Stat(v.configuredDirectory); os.IsNotExist(err) {
		return nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	isWithin, err := v.isPathWithinDirectory(absPath)
	if err != nil {
		return fmt.Errorf("path validation failed: %w", err)
	}

	if !isWithin {
		return fmt.Errorf("path is outside configured directory: %s", path)
	}

	return nil
}

// isPathWithinDirectory checks if a path is within the configured directory,
// resolving symlinks on both sides so neither can escape the sandbox.
func (v *PathValidator) isPathWithinDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	absConfigDir, err := filepath.Abs(v.configuredDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(absConfigDir)

	realPath := cleanPath
	if info, err := os.Lstat(cleanPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		if resolved, err := filepath.EvalSymlinks(cleanPath); err == nil {
			realPath = resolved
		}
	}

	realDir := cleanDir
	if resolved, err := filepath.EvalSymlinks(cleanDir); err == nil {
		realDir = resolved
	}

	dirWithSep := cleanDir
	if !strings.HasSuffix(dirWithSep, string(filepath.Separator)) {
		dirWithSep += string(filepath.Separator)
	}

	realDirWithSep := realDir
	if !strings.HasSuffix(realDirWithSep, string(filepath.Separator)) {
		realDirWithSep += string(filepath.Separator)
	}

	pathOk := strings.HasPrefix(cleanPath, dirWithSep) || cleanPath == cleanDir ||
		strings.HasPrefix(cleanPath, realDirWithSep) || cleanPath == realDir
	realPathOk := strings.HasPrefix(realPath, dirWithSep) || realPath == cleanDir ||
		strings.HasPrefix(realPath, realDirWithSep) || realPath == realDir

	return pathOk && realPathOk, nil
}

// ConfiguredDirectory returns the configured directory path.
func (v *PathValidator) ConfiguredDirectory() string {
	return v.configuredDirectory
}

// NormalizePath returns a normalized, absolute path within the configured
// directory. Relative paths are resolved against the configured directory.
func (v *PathValidator) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.configuredDirectory, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	if err := v.ValidatePath(absPath); err != nil {
		return "", err
	}

	return absPath, nil
}
