// Package validation checks user-supplied paths and input files before the
// markup readers see them: path traversal, length limits, control
// characters, oversized or binary inputs.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Security limits to prevent resource exhaustion (CWE-400).
const (
	// MaxFileSize is the maximum size of a markup, manifest or template file (16 MB).
	MaxFileSize = 16 << 20
	// MaxFilenameLength is the maximum allowed filename length.
	MaxFilenameLength = 255
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrInvalidFilename  = errors.New("invalid filename")
	ErrPathTooLong      = errors.New("path too long")
	ErrFilenameTooLong  = errors.New("filename too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrFileTooLarge     = errors.New("file too large")
	ErrNotText          = errors.New("file is not text")
)

// SanitizePath validates a path given relative to baseDir, as manifest
// entries are, and makes sure it does not escape baseDir.
// Returns the cleaned path relative to the base directory.
func SanitizePath(baseDir, userPath string) (string, error) {
	if userPath == "" {
		return "", ErrEmptyPath
	}
	if len(userPath) > MaxPathLength {
		return "", ErrPathTooLong
	}

	cleanPath := filepath.Clean(userPath)
	if filepath.IsAbs(cleanPath) {
		return "", fmt.Errorf("%w: absolute path not allowed", ErrPathTraversal)
	}
	if cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve base directory: %w", err)
	}
	absPath, err := filepath.Abs(filepath.Join(baseDir, cleanPath))
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	relPath, err := filepath.Rel(absBase, absPath)
	if err != nil || relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}

	return cleanPath, nil
}

// IsPathSafe reports whether SanitizePath accepts userPath.
func IsPathSafe(baseDir, userPath string) bool {
	_, err := SanitizePath(baseDir, userPath)
	return err == nil
}

// ValidatePath checks a command-line path without a base directory:
// length limits, null bytes and control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// ValidateFilename checks a single path element, such as a bundle entry name.
func ValidateFilename(filename string) error {
	if filename == "" {
		return ErrInvalidFilename
	}
	if len(filename) > MaxFilenameLength {
		return ErrFilenameTooLong
	}
	if filename == "." || filename == ".." {
		return fmt.Errorf("%w: reserved name", ErrInvalidFilename)
	}
	if strings.ContainsAny(filename, "/\\") {
		return fmt.Errorf("%w: path separator not allowed", ErrInvalidFilename)
	}
	for _, r := range filename {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidFilename)
		}
	}
	if strings.HasPrefix(filename, "-") {
		return fmt.Errorf("%w: filename cannot start with hyphen", ErrInvalidFilename)
	}
	return nil
}

// SanitizeFilename turns an issue name into a safe file name by replacing
// path separators and dropping control characters.
func SanitizeFilename(filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	filename = strings.NewReplacer("/", "_", "\\", "_").Replace(filename)

	var cleaned strings.Builder
	for _, r := range filename {
		if !unicode.IsControl(r) {
			cleaned.WriteRune(r)
		}
	}
	filename = strings.TrimLeft(cleaned.String(), "-")

	if err := ValidateFilename(filename); err != nil {
		return "", err
	}
	return filename, nil
}

// ReadTextFile validates path and reads it, refusing files larger than
// MaxFileSize or content that does not look like text.
func ReadTextFile(path string) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("%s: %w (limit %d bytes)", path, ErrFileTooLarge, MaxFileSize)
	}
	if len(data) > 0 && !isLikelyText(data[:min(len(data), 512)]) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotText)
	}
	return data, nil
}

// isLikelyText checks if the buffer contains likely text content.
func isLikelyText(buf []byte) bool {
	if len(buf) == 0 {
		return false
	}

	// Null bytes are a strong indicator of binary content
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}

	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b <= 0x7e || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else if b < 0x20 {
			control++
		}
		// UTF-8 bytes are neutral
	}

	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
