package manifest

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/FocuswithJustin/issuetex/core/content"
	ierrors "github.com/FocuswithJustin/issuetex/core/errors"
	"github.com/FocuswithJustin/issuetex/internal/validation"
)

// evidenceFrontMatter is the optional YAML block at the top of an evidence
// file.
type evidenceFrontMatter struct {
	Location string `yaml:"location"`
}

// ParseEvidence splits optional front matter off an evidence file. The
// location argument, when non-empty, overrides the front matter location.
func ParseEvidence(source string, data []byte, location string) (content.Evidence, error) {
	var meta evidenceFrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return content.Evidence{}, fmt.Errorf("%s: parse frontmatter: %w", source, err)
	}

	if location == "" {
		location = meta.Location
	}
	return content.Evidence{
		Location: location,
		Textile:  string(body),
		Source:   source,
	}, nil
}

// ReadEvidence reads an evidence file from disk.
func ReadEvidence(path, location string) (content.Evidence, error) {
	data, err := validation.ReadTextFile(path)
	if err != nil {
		return content.Evidence{}, ierrors.NewIO("read", path, err)
	}
	return ParseEvidence(path, data, location)
}
