// Package batch renders every issue of a manifest concurrently.
package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/FocuswithJustin/issuetex/core/content"
	"github.com/FocuswithJustin/issuetex/internal/archive"
	"github.com/FocuswithJustin/issuetex/internal/logging"
	"github.com/FocuswithJustin/issuetex/internal/manifest"
	"github.com/FocuswithJustin/issuetex/internal/render"
	"github.com/FocuswithJustin/issuetex/internal/validation"
)

// Result is the outcome of rendering one manifest issue.
type Result struct {
	Name   string
	Digest string
	LaTeX  []byte
	Err    error
}

type job struct {
	index int
	issue manifest.Issue
}

type indexedResult struct {
	index int
	Result
}

// runner holds what is shared by every job of one run. All of it is
// read-only or internally synchronized.
type runner struct {
	m         *manifest.Manifest
	asm       *content.Assembler
	memo      *EvidenceMemo
	renderers map[string]*render.Renderer
}

// Run renders every issue of m with up to workers goroutines (0 means one
// per CPU). Results are in manifest order. The error is non-nil when any
// issue failed and joins the per-issue errors; the results are returned
// either way.
func Run(ctx context.Context, m *manifest.Manifest, workers int) ([]Result, error) {
	renderers, err := loadRenderers(m)
	if err != nil {
		return nil, err
	}

	asm := content.NewAssembler(m.Options.ContentOptions()...)
	r := &runner{
		m:         m,
		asm:       asm,
		memo:      NewEvidenceMemo(asm),
		renderers: renderers,
	}

	pool := NewWorkerPool[job, indexedResult](workers, len(m.Issues))
	logging.InfoContext(ctx, "batch_started",
		"issues", len(m.Issues),
		"workers", pool.Workers())
	pool.Start(func(j job) indexedResult {
		return indexedResult{index: j.index, Result: r.renderIssue(ctx, j.issue)}
	})
	for i, is := range m.Issues {
		pool.Submit(job{index: i, issue: is})
	}
	pool.Close()

	results := make([]Result, len(m.Issues))
	for res := range pool.Results() {
		results[res.index] = res.Result
	}

	logging.DebugContext(ctx, "batch_finished",
		"issues", len(results),
		"workers", pool.Workers(),
		"evidence_parses", r.memo.Parses())

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, fmt.Errorf("issue %s: %w", res.Name, res.Err))
		}
	}
	return results, errors.Join(errs...)
}

// loadRenderers parses the default template and every distinct custom
// template once, before any job starts.
func loadRenderers(m *manifest.Manifest) (map[string]*render.Renderer, error) {
	renderers := map[string]*render.Renderer{}

	def, err := render.New(render.Config{})
	if err != nil {
		return nil, err
	}
	renderers[""] = def

	for _, is := range m.Issues {
		if _, ok := renderers[is.Template]; ok {
			continue
		}
		path, err := m.Resolve(is.Template)
		if err != nil {
			return nil, fmt.Errorf("issue %s template: %w", is.Name, err)
		}
		r, err := render.New(render.Config{TemplatePath: path})
		if err != nil {
			return nil, fmt.Errorf("issue %s: %w", is.Name, err)
		}
		renderers[is.Template] = r
	}
	return renderers, nil
}

func (r *runner) renderIssue(ctx context.Context, is manifest.Issue) Result {
	res := Result{Name: is.Name}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	path, err := r.m.Resolve(is.Issue)
	if err != nil {
		res.Err = err
		return res
	}
	text, err := validation.ReadTextFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	res.Digest = Digest(string(text))

	evidences := make([]content.Evidence, 0, len(is.Evidences))
	for _, ref := range is.Evidences {
		evPath, err := r.m.Resolve(ref.Path)
		if err != nil {
			res.Err = err
			return res
		}
		ev, err := manifest.ReadEvidence(evPath, ref.Location)
		if err != nil {
			res.Err = err
			return res
		}
		evidences = append(evidences, ev)
	}

	model, err := r.asm.IssueWith(r.memo, path, string(text), evidences)
	if err != nil {
		logging.DocumentFailed(ctx, path, err, "issue", is.Name)
		res.Err = err
		return res
	}
	logging.DocumentParsed(ctx, path, res.Digest, len(model), "issue", is.Name)

	var buf bytes.Buffer
	if err := r.renderers[is.Template].Render(&buf, model); err != nil {
		res.Err = err
		return res
	}
	res.LaTeX = buf.Bytes()
	return res
}

// Bundle converts successful results into bundle entries named after the
// issue, in result order.
func Bundle(results []Result) ([]archive.File, error) {
	files := make([]archive.File, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		name, err := validation.SanitizeFilename(res.Name)
		if err != nil {
			return nil, fmt.Errorf("issue %s: %w", res.Name, err)
		}
		files = append(files, archive.File{Name: name + ".tex", Data: res.LaTeX})
	}
	return files, nil
}
