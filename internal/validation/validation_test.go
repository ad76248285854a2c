package validation

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSanitizePath(t *testing.T) {
	baseDir := "/tmp/test"

	tests := []struct {
		name      string
		userPath  string
		want      string
		wantError error
	}{
		{"simple valid path", "issue.textile", "issue.textile", nil},
		{"nested valid path", "evidence/ev1.textile", filepath.Join("evidence", "ev1.textile"), nil},
		{"path with redundant separators", "evidence//ev1.textile", filepath.Join("evidence", "ev1.textile"), nil},
		{"path with dot component", "./issue.textile", "issue.textile", nil},
		{"dots inside a name", "v1..2.textile", "v1..2.textile", nil},
		{"path traversal with dotdot", "../etc/passwd", "", ErrPathTraversal},
		{"path traversal in middle", "evidence/../../etc/passwd", "", ErrPathTraversal},
		{"absolute path", "/etc/passwd", "", ErrPathTraversal},
		{"empty path", "", "", ErrEmptyPath},
		{"very long path", strings.Repeat("a", MaxPathLength+1), "", ErrPathTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizePath(baseDir, tt.userPath)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Errorf("SanitizePath() error = %v, want %v", err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("SanitizePath() unexpected error = %v", err)
			}
			if got != tt.want {
				t.Errorf("SanitizePath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsPathSafe(t *testing.T) {
	if !IsPathSafe("/tmp", "a/b.textile") {
		t.Error("IsPathSafe should accept a nested relative path")
	}
	if IsPathSafe("/tmp", "../b.textile") {
		t.Error("IsPathSafe should reject traversal")
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		wantError error
	}{
		{"relative path", "issues/xss.textile", nil},
		{"absolute path", "/srv/report/xss.textile", nil},
		{"empty", "", ErrEmptyPath},
		{"null byte", "issue\x00.textile", ErrInvalidCharacter},
		{"control character", "issue\n.textile", ErrInvalidCharacter},
		{"too long", strings.Repeat("a", MaxPathLength+1), ErrPathTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantError == nil && err != nil {
				t.Errorf("ValidatePath() unexpected error = %v", err)
			}
			if tt.wantError != nil && !errors.Is(err, tt.wantError) {
				t.Errorf("ValidatePath() error = %v, want %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name      string
		filename  string
		wantError bool
	}{
		{"valid", "sql-injection.tex", false},
		{"empty", "", true},
		{"dot", ".", true},
		{"dotdot", "..", true},
		{"separator", "a/b.tex", true},
		{"backslash", `a\b.tex`, true},
		{"control", "a\tb.tex", true},
		{"hyphen prefix", "-rf.tex", true},
		{"too long", strings.Repeat("a", MaxFilenameLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)
			if (err != nil) != tt.wantError {
				t.Errorf("ValidateFilename(%q) error = %v, wantError %v", tt.filename, err, tt.wantError)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"xss", "xss", false},
		{"  web/xss  ", "web_xss", false},
		{`a\b`, "a_b", false},
		{"--flag", "flag", false},
		{"bad\x01name", "badname", false},
		{"", "", true},
		{"---", "", true},
	}

	for _, tt := range tests {
		got, err := SanitizeFilename(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("SanitizeFilename(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadTextFile(t *testing.T) {
	dir := t.TempDir()

	text := filepath.Join(dir, "issue.textile")
	if err := os.WriteFile(text, []byte("#[Title]#\nXSS\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	data, err := ReadTextFile(text)
	if err != nil {
		t.Fatalf("ReadTextFile() error = %v", err)
	}
	if string(data) != "#[Title]#\nXSS\n" {
		t.Errorf("ReadTextFile() = %q", data)
	}

	empty := filepath.Join(dir, "empty.textile")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if data, err := ReadTextFile(empty); err != nil || len(data) != 0 {
		t.Errorf("ReadTextFile(empty) = %q, %v", data, err)
	}

	binary := filepath.Join(dir, "image.png")
	if err := os.WriteFile(binary, []byte{0x89, 'P', 'N', 'G', 0, 0, 0, 1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadTextFile(binary); !errors.Is(err, ErrNotText) {
		t.Errorf("ReadTextFile(binary) error = %v, want ErrNotText", err)
	}

	large := filepath.Join(dir, "large.textile")
	if err := os.WriteFile(large, []byte(strings.Repeat("a", MaxFileSize+1)), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadTextFile(large); !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("ReadTextFile(large) error = %v, want ErrFileTooLarge", err)
	}

	if _, err := ReadTextFile(filepath.Join(dir, "missing.textile")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadTextFile(missing) error = %v, want not-exist", err)
	}
}

func TestIsLikelyText(t *testing.T) {
	if isLikelyText(nil) {
		t.Error("empty buffer should not be text")
	}
	if !isLikelyText([]byte("Résumé\tline\n")) {
		t.Error("UTF-8 text should be text")
	}
	if isLikelyText([]byte{1, 2, 3, 4, 'a'}) {
		t.Error("control bytes should not be text")
	}
}
