// Package manifest loads the YAML manifests that drive batch rendering and
// the evidence files they reference.
package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/FocuswithJustin/issuetex/core/content"
	ierrors "github.com/FocuswithJustin/issuetex/core/errors"
	"github.com/FocuswithJustin/issuetex/internal/validation"
)

// Manifest lists the issues of one report.
type Manifest struct {
	// Dir is the directory relative paths are resolved against. It is set
	// by LoadFromFile and never read from YAML.
	Dir string `yaml:"-"`

	Issues  []Issue `yaml:"issues"`
	Options Options `yaml:"options"`
}

// Issue is one issue file with its evidences.
type Issue struct {
	Name      string        `yaml:"name"`
	Issue     string        `yaml:"issue"`
	Evidences []EvidenceRef `yaml:"evidences"`
	Template  string        `yaml:"template"`
}

// EvidenceRef points at an evidence file. Location overrides any location
// given in the file's front matter.
type EvidenceRef struct {
	Path     string `yaml:"path"`
	Location string `yaml:"location"`
}

// Options mirrors content.Options for YAML.
type Options struct {
	TableHeaders *bool  `yaml:"table_headers"`
	RowSeparator string `yaml:"row_separator"`
}

// ContentOptions converts o into interpreter options.
func (o Options) ContentOptions() []content.Option {
	var opts []content.Option
	if o.TableHeaders != nil {
		opts = append(opts, content.WithTableHeaders(*o.TableHeaders))
	}
	if o.RowSeparator != "" {
		opts = append(opts, content.WithRowSeparator(o.RowSeparator))
	}
	return opts
}

// LoadFromFile reads and validates a manifest; relative paths in it are
// resolved against the manifest's directory.
func LoadFromFile(path string) (*Manifest, error) {
	data, err := validation.ReadTextFile(path)
	if err != nil {
		return nil, ierrors.NewIO("read", path, err)
	}

	m, err := Load(bytes.NewReader(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Load decodes and validates a manifest from r. Unknown keys are errors.
func Load(r io.Reader, dir string) (*Manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	m := &Manifest{}
	if err := dec.Decode(m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ierrors.NewValidation("issues", "manifest is empty")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	m.Dir = dir

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Validate checks that every issue has a unique name and that all paths
// stay inside the manifest directory.
func (m *Manifest) Validate() error {
	if len(m.Issues) == 0 {
		return ierrors.NewValidation("issues", "manifest lists no issues")
	}

	seen := make(map[string]bool, len(m.Issues))
	for i, is := range m.Issues {
		if is.Name == "" {
			return ierrors.NewValidation("name", fmt.Sprintf("issue at index %d has no name", i))
		}
		if seen[is.Name] {
			return ierrors.NewValidation("name", fmt.Sprintf("duplicate issue name %q", is.Name))
		}
		seen[is.Name] = true

		if _, err := validation.SanitizeFilename(is.Name); err != nil {
			return fmt.Errorf("issue %s: %w", is.Name, err)
		}
		if is.Issue == "" {
			return ierrors.NewValidation("issue", fmt.Sprintf("issue %s has no issue file", is.Name))
		}
		if _, err := validation.SanitizePath(m.Dir, is.Issue); err != nil {
			return fmt.Errorf("issue %s: %w", is.Name, err)
		}
		if is.Template != "" {
			if _, err := validation.SanitizePath(m.Dir, is.Template); err != nil {
				return fmt.Errorf("issue %s template: %w", is.Name, err)
			}
		}
		for j, ev := range is.Evidences {
			if _, err := validation.SanitizePath(m.Dir, ev.Path); err != nil {
				return fmt.Errorf("issue %s evidence %d: %w", is.Name, j+1, err)
			}
		}
	}
	return nil
}

// Resolve returns rel joined onto the manifest directory after checking
// that it does not escape it.
func (m *Manifest) Resolve(rel string) (string, error) {
	clean, err := validation.SanitizePath(m.Dir, rel)
	if err != nil {
		return "", err
	}
	return filepath.Join(m.Dir, clean), nil
}
