package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"trendy/internal/core"
	"trendy/internal/pipeline"
	"trendy/internal/render"
)

type reportOptions struct {
	mode           string
	city           string
	format         string
	output         string
	showPrompt     bool
	showCandidates bool
}

// NewReportCmd creates the report command
func NewReportCmd(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate one set of trending place reports",
		Long: `Run the full sequence once: search each category, extract candidate names,
build the prompt, call the model and parse its JSON answer.

Failures are printed with their kind and, for parse failures, the raw model
output so prompt drift can be diagnosed.

Examples:
  trendy report
  trendy report --mode ungrounded
  trendy report --city Jeddah --show-prompt
  trendy report --format json
  trendy report --format markdown --output reports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), cmd.OutOrStdout(), root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.mode, "mode", "m", "", "grounded (search first) or ungrounded (default from config)")
	cmd.Flags().StringVarP(&opts.city, "city", "c", "", "target city (default from config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "output format: text, markdown, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "also write the rendered report to this directory")
	cmd.Flags().BoolVar(&opts.showPrompt, "show-prompt", false, "include the prompt sent to the model")
	cmd.Flags().BoolVar(&opts.showCandidates, "show-candidates", true, "include the extracted candidate names")

	return cmd
}

func runReport(ctx context.Context, out io.Writer, root *rootOptions, opts *reportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := root.load(runOverrides(opts.mode, opts.city))
	if err != nil {
		return err
	}
	mode, err := core.ParseMode(cfg.App.Mode)
	if err != nil {
		return err
	}

	p, err := pipeline.NewBuilder(cfg).Build(ctx)
	if err != nil {
		return err
	}

	if cfg.App.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.App.RunTimeout)
		defer cancel()
	}

	run, runErr := p.Run(ctx, pipeline.RunOptions{Mode: mode, City: cfg.App.City})
	if run == nil {
		return runErr
	}

	content, ext, err := formatRun(run, opts)
	if err != nil {
		return err
	}
	fmt.Fprint(out, content)

	if opts.output != "" {
		filename := fmt.Sprintf("trendy_%s_%s.%s", run.City, time.Now().Format("2006-01-02_150405"), ext)
		path, err := render.WriteToFile(content, opts.output, filename)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "\nSaved to %s\n", path)
	}

	return runErr
}

// formatRun renders run in the requested format and returns the file extension.
func formatRun(run *core.Run, opts *reportOptions) (string, string, error) {
	renderOpts := render.Options{ShowPrompt: opts.showPrompt, ShowCandidates: opts.showCandidates}

	switch opts.format {
	case "", "text":
		return render.Terminal(run, renderOpts), "txt", nil
	case "markdown", "md":
		return render.Markdown(run, renderOpts), "md", nil
	case "json":
		data, err := json.MarshalIndent(jsonReport(run, opts.showPrompt), "", "  ")
		if err != nil {
			return "", "", fmt.Errorf("failed to encode report: %w", err)
		}
		return string(data) + "\n", "json", nil
	default:
		return "", "", fmt.Errorf("unknown format %q (supported: text, markdown, json)", opts.format)
	}
}

// reportJSON is the --format json document
type reportJSON struct {
	*core.Run
	Error *failureJSON `json:"error,omitempty"`
}

type failureJSON struct {
	Kind       string `json:"kind"`
	Diagnostic string `json:"diagnostic"`
}

func jsonReport(run *core.Run, showPrompt bool) reportJSON {
	copied := *run
	if !showPrompt {
		copied.Prompt = ""
	}
	doc := reportJSON{Run: &copied}
	if run.Err != nil {
		doc.Error = &failureJSON{Kind: "Error", Diagnostic: run.Err.Error()}
		var runErr *pipeline.RunError
		if errors.As(run.Err, &runErr) {
			doc.Error.Kind = string(runErr.Kind)
			doc.Error.Diagnostic = runErr.Diagnostic
		}
	}
	return doc
}
