package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// supportedExtensions lists the scan formats the OCR engines understand.
var supportedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// FileValidator checks that a document scan is processable before any
// engine touches it.
type FileValidator struct {
	maxFileSize int64
}

// NewFileValidator creates a file validator with the specified size limit.
func NewFileValidator(maxFileSize int64) *FileValidator {
	return &FileValidator{
		maxFileSize: maxFileSize,
	}
}

// ValidateFile performs validation on a document scan file. Validation
// failure is reported in the result, not as an error.
func (v *FileValidator) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	result := &ValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	if err := v.validateScanFile(req.Path); err != nil {
		result.Message = err.Error()
		return result, nil
	}

	result.Valid = true
	return result, nil
}

// validateScanFile performs detailed validation on a document scan file.
func (v *FileValidator) validateScanFile(filePath string) error {
	if filePath == "" {
		return fmt.Errorf("path cannot be empty")
	}

	fileInfo, err := os.Stat(filePath)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", filePath)
	}
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}

	if fileInfo.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if !supportedExtensions[ext] {
		return fmt.Errorf("unsupported file format %q: %s", ext, filePath)
	}

	if fileInfo.Size() == 0 {
		return fmt.Errorf("file is empty: %s", filePath)
	}

	if fileInfo.Size() > v.maxFileSize {
		return fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			fileInfo.Size(), v.maxFileSize)
	}

	return nil
}

// IsProcessable performs a quick check to see if a file can be processed.
func (v *FileValidator) IsProcessable(filePath string) bool {
	return v.validateScanFile(filePath) == nil
}

// IsSupportedFormat reports whether the file extension is a known scan
// format, without touching the filesystem.
func IsSupportedFormat(filePath string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(filePath))]
}
