package main

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/vld"
	"github.com/reoring/vld/i18n"
	"github.com/reoring/vld/internal/catalog"
	"github.com/reoring/vld/source"
)

type validateOptions struct {
	schema     string
	lang       string
	output     string
	duplicates string
	format     string
	maxIssues  int
	maxDepth   int
}

func newValidateCmd(a *app) *cobra.Command {
	opts := validateOptions{
		lang:       a.cfg.Lang,
		output:     a.cfg.Output,
		duplicates: a.cfg.DuplicateKeys,
		format:     "auto",
		maxIssues:  a.cfg.MaxIssues,
		maxDepth:   a.cfg.MaxDepth,
	}
	cmd := &cobra.Command{
		Use:   "validate --schema NAME FILE...",
		Short: "Validate documents against a schema",
		Long: `Validate each FILE against the named schema. All issues of a document are
reported, not only the first one. The exit code is 1 when any document fails.

Examples:
  vld validate --schema user alice.json bob.yaml
  vld validate --schema notification --lang ja --output json msg.json
  vld validate --schema service --duplicate-keys error svc.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.validate(opts, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.schema, "schema", "s", "", "schema name (see vld schemas)")
	f.StringVar(&opts.lang, "lang", opts.lang, "message language, e.g. en, ja, de-CH")
	f.StringVarP(&opts.output, "output", "o", opts.output, "report format: text, json")
	f.StringVar(&opts.duplicates, "duplicate-keys", opts.duplicates, "repeated object keys: last, error")
	f.StringVar(&opts.format, "format", opts.format, "input format: auto, json, yaml")
	f.IntVar(&opts.maxIssues, "max-issues", opts.maxIssues, "issues shown per document, 0 for all")
	f.IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "maximum nesting depth, 0 for unlimited")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

// fileReport is the outcome for one document. Omitted counts issues cut by
// --max-issues.
type fileReport struct {
	File    string        `json:"file"`
	Valid   bool          `json:"valid"`
	Issues  []issueReport `json:"issues,omitempty"`
	Omitted int           `json:"omitted,omitempty"`
}

type issueReport struct {
	Path     string     `json:"path"`
	Code     string     `json:"code"`
	Message  string     `json:"message"`
	Received *vld.Value `json:"received,omitempty"`
}

func (a *app) validate(opts validateOptions, files []string) error {
	entry, ok := catalog.Lookup(opts.schema)
	if !ok {
		return fmt.Errorf("unknown schema %q (available: %s)", opts.schema, strings.Join(catalog.Names(), ", "))
	}
	format, err := source.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	dups, err := source.ParseDuplicateKeys(opts.duplicates)
	if err != nil {
		return err
	}
	if opts.output != "text" && opts.output != "json" {
		return fmt.Errorf("unknown output %q: must be text or json", opts.output)
	}
	var messages i18n.Resolver
	if opts.lang != "" && opts.lang != "en" {
		c, err := i18n.ForLanguage(opts.lang)
		if err != nil {
			return err
		}
		messages = c
	}

	srcOpts := []source.Option{source.WithDuplicateKeys(dups), source.WithMaxDepth(opts.maxDepth)}
	if format != source.Auto {
		srcOpts = append(srcOpts, source.WithFormat(format))
	}

	reports := make([]fileReport, 0, len(files))
	failed := 0
	for _, file := range files {
		iss := validateFile(entry, file, srcOpts)
		a.log.Debug("validated", "file", file, "schema", entry.Name, "issues", len(iss))
		if len(iss) > 0 {
			failed++
		}
		reports = append(reports, newReport(file, i18n.Translate(iss, messages), opts.maxIssues))
	}

	if err := a.writeReports(opts.output, reports); err != nil {
		return err
	}
	a.log.Info("done", "schema", entry.Name, "files", len(files), "failed", failed)
	if failed > 0 {
		return errFailed
	}
	return nil
}

func validateFile(entry catalog.Entry, file string, opts []source.Option) vld.Issues {
	doc, err := source.ReadFile(file, opts...)
	if err == nil {
		_, err = entry.Schema.ParseValue(doc)
	}
	return vld.IssuesOf(err)
}

func newReport(file string, iss vld.Issues, limit int) fileReport {
	r := fileReport{File: file, Valid: len(iss) == 0}
	if limit > 0 && len(iss) > limit {
		r.Omitted = len(iss) - limit
		iss = iss[:limit]
	}
	for _, it := range iss {
		r.Issues = append(r.Issues, issueReport{
			Path:     it.Path.Pointer(),
			Code:     it.Code.Key(),
			Message:  it.Message,
			Received: it.Received,
		})
	}
	return r
}

func (a *app) writeReports(output string, reports []fileReport) error {
	if output == "json" {
		b, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(a.stdout, string(b))
		return err
	}
	for _, r := range reports {
		if r.Valid {
			fmt.Fprintf(a.stdout, "✔ %s\n", r.File)
			continue
		}
		fmt.Fprintf(a.stdout, "✖ %s\n", r.File)
		for _, it := range r.Issues {
			line := it.Message
			if it.Path != "/" {
				line = it.Path + ": " + line
			}
			if it.Received != nil {
				line += ", received " + vld.FormatShort(*it.Received)
			}
			fmt.Fprintf(a.stdout, "  %s\n", line)
		}
		if r.Omitted > 0 {
			fmt.Fprintf(a.stdout, "  ... and %d more issues\n", r.Omitted)
		}
	}
	return nil
}
