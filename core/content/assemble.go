package content

import (
	"fmt"

	"github.com/FocuswithJustin/issuetex/core/encoding"
	"github.com/FocuswithJustin/issuetex/core/textile"
)

// Evidence is a secondary markup document attached to an issue.
type Evidence struct {
	// Location is the declared host or location; empty means none.
	Location string
	// Textile is the raw markup.
	Textile string
	// Source names the evidence in diagnostics (e.g. its file path).
	Source string
}

// IssueValidator checks an interpreted issue before evidences are attached.
type IssueValidator func(Model) error

// ValidateIssue is the default issue check. It accepts every issue.
func ValidateIssue(Model) error {
	return nil
}

// Assembler builds issue models with their evidence models attached.
type Assembler struct {
	interp   *Interpreter
	validate IssueValidator
}

// NewAssembler returns an assembler using ValidateIssue.
func NewAssembler(opts ...Option) *Assembler {
	return &Assembler{
		interp:   NewInterpreter(opts...),
		validate: ValidateIssue,
	}
}

// WithValidator returns a copy of a that runs v after parsing each issue.
func (a *Assembler) WithValidator(v IssueValidator) *Assembler {
	if v == nil {
		v = ValidateIssue
	}
	return &Assembler{interp: a.interp, validate: v}
}

// Parse parses and interprets one markup document.
func (a *Assembler) Parse(source, text string) (Model, error) {
	doc, err := textile.Parse(source, text)
	if err != nil {
		return nil, err
	}
	model, err := a.interp.Interpret(doc)
	if err != nil {
		if source != "" {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
		return nil, err
	}
	return model, nil
}

// Evidence interprets one evidence document and fills in its location.
func (a *Assembler) Evidence(e Evidence) (Model, error) {
	model, err := a.Parse(e.Source, e.Textile)
	if err != nil {
		return nil, err
	}
	return WithLocation(model, e.Location), nil
}

// WithLocation sets the location field of an evidence model unless the
// markup declared one. The label is escaped like any markup text. It
// returns a new model and leaves m untouched.
func WithLocation(m Model, location string) Model {
	out := m.Clone()
	if _, ok := out[LocationKey]; ok {
		return out
	}
	if location == "" {
		location = DefaultLocation
	}
	out[LocationKey] = encoding.EscapeLaTeXMeta(location)
	return out
}

// EvidenceSource interprets evidence documents. *Assembler is one; a
// caching source may share models between issues.
type EvidenceSource interface {
	Evidence(e Evidence) (Model, error)
}

// Issue interprets an issue, validates it, interprets every evidence and
// attaches them in order under EvidencesKey.
func (a *Assembler) Issue(source, text string, evidences []Evidence) (Model, error) {
	return a.IssueWith(a, source, text, evidences)
}

// IssueWith is Issue with evidences interpreted by src.
func (a *Assembler) IssueWith(src EvidenceSource, source, text string, evidences []Evidence) (Model, error) {
	issue, err := a.Parse(source, text)
	if err != nil {
		return nil, err
	}
	if err := a.validate(issue); err != nil {
		return nil, fmt.Errorf("invalid issue: %w", err)
	}

	models := make([]Model, 0, len(evidences))
	for i, e := range evidences {
		m, err := src.Evidence(e)
		if err != nil {
			return nil, fmt.Errorf("evidence %d: %w", i+1, err)
		}
		models = append(models, m)
	}
	return Attach(issue, models), nil
}

// Attach returns a copy of issue with the evidence models under EvidencesKey.
func Attach(issue Model, evidences []Model) Model {
	out := issue.Clone()
	if evidences == nil {
		evidences = []Model{}
	}
	out[EvidencesKey] = evidences
	return out
}

// Parse interprets markup text with the given options.
func Parse(text string, opts ...Option) (Model, error) {
	return NewAssembler(opts...).Parse("", text)
}

// ParseSource is Parse with a source name for diagnostics.
func ParseSource(source, text string, opts ...Option) (Model, error) {
	return NewAssembler(opts...).Parse(source, text)
}

// IssueContent interprets an issue and its evidences into one model.
func IssueContent(issue string, evidences []Evidence, opts ...Option) (Model, error) {
	return NewAssembler(opts...).Issue("", issue, evidences)
}
