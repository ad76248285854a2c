package batch

import (
	"encoding/hex"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/issuetex/core/content"
)

// Digest returns the hex BLAKE3-256 digest of markup text.
func Digest(text string) string {
	sum := blake3.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

type memoEntry struct {
	once  sync.Once
	model content.Model
	err   error
}

// EvidenceMemo interprets each distinct evidence document once per run.
// Entries are keyed by the BLAKE3 digest of the source name and text, so a
// cached error always names the document it was reported for. The cached
// models are never modified; callers receive copies with their own location
// applied.
type EvidenceMemo struct {
	asm *content.Assembler

	mu      sync.Mutex
	entries map[[32]byte]*memoEntry
	parses  int
}

// NewEvidenceMemo returns an empty memo interpreting with asm.
func NewEvidenceMemo(asm *content.Assembler) *EvidenceMemo {
	return &EvidenceMemo{
		asm:     asm,
		entries: make(map[[32]byte]*memoEntry),
	}
}

// Evidence implements content.EvidenceSource.
func (m *EvidenceMemo) Evidence(e content.Evidence) (content.Model, error) {
	key := memoKey(e)

	m.mu.Lock()
	entry, ok := m.entries[key]
	if !ok {
		entry = &memoEntry{}
		m.entries[key] = entry
	}
	m.mu.Unlock()

	entry.once.Do(func() {
		entry.model, entry.err = m.asm.Parse(e.Source, e.Textile)
		m.mu.Lock()
		m.parses++
		m.mu.Unlock()
	})
	if entry.err != nil {
		return nil, entry.err
	}
	return content.WithLocation(entry.model, e.Location), nil
}

func memoKey(e content.Evidence) [32]byte {
	h := blake3.New()
	h.WriteString(e.Source)
	h.Write([]byte{0})
	h.WriteString(e.Textile)
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}

// Parses reports how many evidence texts were actually interpreted.
func (m *EvidenceMemo) Parses() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.parses
}
