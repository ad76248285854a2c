// Command issuetex converts textile issue records and their evidences into
// LaTeX report sections.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/dustin/go-humanize"

	"github.com/FocuswithJustin/issuetex/core/content"
	ierrors "github.com/FocuswithJustin/issuetex/core/errors"
	"github.com/FocuswithJustin/issuetex/internal/archive"
	"github.com/FocuswithJustin/issuetex/internal/batch"
	"github.com/FocuswithJustin/issuetex/internal/logging"
	"github.com/FocuswithJustin/issuetex/internal/manifest"
	"github.com/FocuswithJustin/issuetex/internal/render"
	"github.com/FocuswithJustin/issuetex/internal/validation"
)

const version = "0.1.0"

// CLI defines the command-line interface for issuetex.
type CLI struct {
	LogLevel  string `name:"log-level" help:"Log level (debug, info, warn, error)" default:"info"`
	LogFormat string `name:"log-format" help:"Log format (text, json)" default:"text"`

	Render  RenderCmd  `cmd:"" help:"Render an issue and its evidences to LaTeX"`
	Content ContentCmd `cmd:"" help:"Print the content model of an issue as JSON"`
	Batch   BatchCmd   `cmd:"" help:"Render every issue of a manifest into a tar.xz bundle"`
	List    ListCmd    `cmd:"" help:"List the files of a bundle"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// App carries what every command needs at run time.
type App struct {
	Ctx    context.Context
	Stdout io.Writer
}

// InputFlags select an issue, its evidences and the interpreter options.
type InputFlags struct {
	Issue          string   `arg:"" help:"Issue markup file" type:"path"`
	Evidence       []string `short:"e" sep:"none" help:"Evidence markup file (repeatable)"`
	Location       []string `short:"l" sep:"none" help:"Location of the evidence at the same position (repeatable)"`
	NoTableHeaders bool     `name:"no-table-headers" help:"Emit table rows only, without the table environment"`
	RowSeparator   string   `name:"row-separator" help:"Table row separator macro (default: \\tnl)"`
}

func (f *InputFlags) options() []content.Option {
	opts := []content.Option{content.WithTableHeaders(!f.NoTableHeaders)}
	if f.RowSeparator != "" {
		opts = append(opts, content.WithRowSeparator(f.RowSeparator))
	}
	return opts
}

// load reads the issue and evidences and interprets them into one model.
// A location list of the wrong length is rejected before any file is read.
func (f *InputFlags) load(ctx context.Context) (content.Model, error) {
	if len(f.Location) > 0 && len(f.Location) != len(f.Evidence) {
		return nil, ierrors.NewMismatch("location count", len(f.Evidence), len(f.Location))
	}

	issue, err := validation.ReadTextFile(f.Issue)
	if err != nil {
		return nil, fmt.Errorf("invalid issue file: %w", err)
	}

	evidences := make([]content.Evidence, 0, len(f.Evidence))
	for i, path := range f.Evidence {
		loc := ""
		if len(f.Location) > 0 {
			loc = f.Location[i]
		}
		ev, err := manifest.ReadEvidence(path, loc)
		if err != nil {
			return nil, fmt.Errorf("invalid evidence file: %w", err)
		}
		evidences = append(evidences, ev)
	}

	model, err := content.NewAssembler(f.options()...).Issue(f.Issue, string(issue), evidences)
	if err != nil {
		logging.DocumentFailed(ctx, f.Issue, err)
		return nil, err
	}
	logging.DocumentParsed(ctx, f.Issue, batch.Digest(string(issue)), len(model), "evidences", len(evidences))
	return model, nil
}

// writeOutput writes data to path, or to stdout when path is empty.
func writeOutput(app *App, path string, data []byte) error {
	if path == "" {
		_, err := app.Stdout.Write(data)
		return err
	}
	if err := validation.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ierrors.NewIO("write", path, err)
	}
	return nil
}

// RenderCmd renders one issue to LaTeX.
type RenderCmd struct {
	InputFlags `embed:""`

	Template string `help:"Custom issue template (default: built-in)" type:"path"`
	Out      string `short:"o" help:"Output file (default: stdout)" type:"path"`
}

func (c *RenderCmd) Run(app *App) error {
	r, err := render.New(render.Config{TemplatePath: c.Template})
	if err != nil {
		return err
	}
	model, err := c.load(app.Ctx)
	if err != nil {
		return err
	}
	out, err := r.RenderString(model)
	if err != nil {
		return err
	}
	return writeOutput(app, c.Out, []byte(out))
}

// ContentCmd prints the content model as indented JSON.
type ContentCmd struct {
	InputFlags `embed:""`

	Out string `short:"o" help:"Output file (default: stdout)" type:"path"`
}

func (c *ContentCmd) Run(app *App) error {
	model, err := c.load(app.Ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode content model: %w", err)
	}
	return writeOutput(app, c.Out, append(data, '\n'))
}

// BatchCmd renders a manifest into a bundle.
type BatchCmd struct {
	Manifest string `arg:"" help:"Manifest YAML file" type:"path"`
	Out      string `required:"" help:"Output bundle path (.tar.xz)" type:"path"`
	Workers  int    `help:"Concurrent workers (0: one per CPU)" default:"0"`
}

func (c *BatchCmd) Run(app *App) error {
	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	m, err := manifest.LoadFromFile(c.Manifest)
	if err != nil {
		return err
	}

	results, err := batch.Run(app.Ctx, m, c.Workers)
	if err != nil {
		logging.WarnContext(app.Ctx, "bundle_skipped",
			"path", c.Out,
			"failed", failedCount(results))
		return err
	}

	files, err := batch.Bundle(results)
	if err != nil {
		return err
	}
	size, err := archive.WriteBundle(c.Out, files)
	if err != nil {
		return err
	}
	logging.BundleWritten(app.Ctx, c.Out, len(files), size)
	return nil
}

func failedCount(results []batch.Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// ListCmd prints the entries of a bundle written by batch.
type ListCmd struct {
	Bundle string `arg:"" help:"Bundle path (.tar.xz)" type:"path"`
}

func (c *ListCmd) Run(app *App) error {
	files, err := archive.ReadBundle(c.Bundle)
	if err != nil {
		return err
	}
	for _, f := range files {
		if _, err := fmt.Fprintf(app.Stdout, "%s\t%s\n", f.Name, humanize.Bytes(uint64(len(f.Data)))); err != nil {
			return err
		}
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(app *App) error {
	_, err := fmt.Fprintf(app.Stdout, "issuetex version %s\n", version)
	return err
}

func initLogging(cli *CLI) error {
	level, err := logging.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	format, err := logging.ParseFormat(cli.LogFormat)
	if err != nil {
		return err
	}
	logging.InitLogger(os.Stderr, level, format)
	return nil
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("issuetex"),
		kong.Description("Textile issue records to LaTeX"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	kctx.FatalIfErrorf(initLogging(&cli))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithRunID(ctx, logging.NewRunID())

	err := kctx.Run(&App{Ctx: ctx, Stdout: os.Stdout})
	if err != nil {
		logging.ErrorContext(ctx, "command_failed", "command", kctx.Command(), "error", err.Error())
	}
	kctx.FatalIfErrorf(err)
}
