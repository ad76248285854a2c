// Package content interprets textile parse trees into the nested field/value
// content model consumed by report templates.
package content

import "strings"

const (
	// EvidencesKey holds the ordered evidence models of an issue.
	EvidencesKey = "evidences"
	// LocationKey holds the location of an evidence model.
	LocationKey = "location"
	// DefaultLocation is used when an evidence declares no location.
	DefaultLocation = "unknown"
)

// Model maps normalized field names to formatted text, a nested Model, or
// a []Model.
type Model map[string]any

// keyRenames maps lower-cased field names onto the names templates expect.
var keyRenames = map[string]string{
	"cvssv3vector":              "cvss_vector",
	"cvssv3.basescore":          "cvss_score",
	"cvssv3.environmentalscore": "cvss_score",
}

// NormalizeKey lower-cases a field name and applies the rename table.
func NormalizeKey(name string) string {
	key := strings.ToLower(name)
	if renamed, ok := keyRenames[key]; ok {
		return renamed
	}
	return key
}

// Text returns the string value of key, or "" if it is absent or not text.
func (m Model) Text(key string) string {
	s, _ := m[key].(string)
	return s
}

// Evidences returns the evidence models attached to an issue model.
func (m Model) Evidences() []Model {
	ev, _ := m[EvidencesKey].([]Model)
	return ev
}

// Clone returns a shallow copy of m.
func (m Model) Clone() Model {
	out := make(Model, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
