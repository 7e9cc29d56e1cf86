package main

import (
	"bytes"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/vld"
	"github.com/reoring/vld/source"
)

func newFmtCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "fmt FILE",
		Short: "Print a document as indented JSON",
		Long:  "Decode FILE (JSON or YAML) and print it as indented JSON with object members in document order.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := source.ParseFormat(format)
			if err != nil {
				return err
			}
			var opts []source.Option
			if f != source.Auto {
				opts = append(opts, source.WithFormat(f))
			}
			doc, err := source.ReadFile(args[0], opts...)
			if err != nil {
				if iss, ok := vld.AsIssues(err); ok {
					return fmt.Errorf("%s: %s", args[0], iss.Error())
				}
				return err
			}
			var buf bytes.Buffer
			if err := json.Indent(&buf, []byte(doc.JSON()), "", "  "); err != nil {
				return err
			}
			buf.WriteByte('\n')
			_, err = a.stdout.Write(buf.Bytes())
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", "auto", "input format: auto, json, yaml")
	return cmd
}
