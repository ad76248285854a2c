package content

import (
	"errors"
	"testing"

	ierrors "github.com/FocuswithJustin/issuetex/core/errors"
	"github.com/FocuswithJustin/issuetex/core/textile"
)

func TestParseFootnoteDef(t *testing.T) {
	tests := []struct {
		raw     string
		want    Footnote
		wantErr bool
	}{
		{raw: "bc. fn1. https://example.com\n", want: Footnote{Index: "1", Link: "https://example.com"}},
		{raw: "bc.. fn7. CVE-2021-44228 advisory  ", want: Footnote{Index: "7", Link: "CVE-2021-44228 advisory"}},
		{raw: "bc. fn12. too many digits", wantErr: true},
		{raw: "fn1. missing marker", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFootnoteDef(tt.raw)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFootnoteDef(%q) should fail", tt.raw)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFootnoteDef(%q) failed: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFootnoteDef(%q) = %+v, want %+v", tt.raw, got, tt.want)
		}
	}
}

func TestParseAnchor(t *testing.T) {
	if idx, err := ParseAnchor("<3>"); err != nil || idx != "3" {
		t.Errorf("ParseAnchor(<3>) = %q, %v", idx, err)
	}
	if _, err := ParseAnchor("<33>"); err == nil {
		t.Error("ParseAnchor(<33>) should fail")
	}
}

// TestCollectFootnotes verifies definitions are found at any depth of a scope.
func TestCollectFootnotes(t *testing.T) {
	doc, err := textile.Parse("", "#[D]#\nbc. fn1. one\n\ntext\nbc. fn2. two\n\nbc. fn1. uno\n")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	notes, err := CollectFootnotes(doc.Elements[0].Content)
	if err != nil {
		t.Fatalf("CollectFootnotes failed: %v", err)
	}
	if len(notes) != 2 {
		t.Fatalf("got %d footnotes, want 2", len(notes))
	}
	if notes["1"] != "uno" {
		t.Errorf("later definition should win: got %q", notes["1"])
	}
	if notes["2"] != "two" {
		t.Errorf("footnote 2 = %q, want two", notes["2"])
	}
}

func TestFootnoteTableResolve(t *testing.T) {
	notes := FootnoteTable{"1": "https://x.y/#a&b"}

	got, err := notes.Resolve("1", 1)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if want := `\footnote{https://x.y/\#a\&b}`; got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}

	_, err = notes.Resolve("4", 12)
	var ferr *ierrors.UnresolvedFootnoteError
	if !errors.As(err, &ferr) {
		t.Fatalf("error = %T, want *errors.UnresolvedFootnoteError", err)
	}
	if ferr.Index != "4" || ferr.Line != 12 {
		t.Errorf("error = %+v, want index 4 on line 12", ferr)
	}
}
