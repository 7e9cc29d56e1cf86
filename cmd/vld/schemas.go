package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/vld"
	"github.com/reoring/vld/internal/catalog"
)

type schemaInfo struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Schema      vld.Descriptor `json:"schema"`
}

func newSchemasCmd(a *app) *cobra.Command {
	var names bool
	cmd := &cobra.Command{
		Use:   "schemas [NAME]",
		Short: "List the built-in schemas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if names {
				for _, n := range catalog.Names() {
					fmt.Fprintln(a.stdout, n)
				}
				return nil
			}
			entries := catalog.All()
			if len(args) == 1 {
				e, ok := catalog.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown schema %q", args[0])
				}
				entries = []catalog.Entry{e}
			}
			infos := make([]schemaInfo, len(entries))
			for i, e := range entries {
				infos[i] = schemaInfo{Name: e.Name, Description: e.Description, Schema: e.Descriptor()}
			}
			b, err := json.MarshalIndent(infos, "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, string(b))
			return err
		},
	}
	cmd.Flags().BoolVar(&names, "names", false, "print names only")
	return cmd
}
