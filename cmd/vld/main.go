// Command vld validates JSON and YAML documents against built-in schemas.
//
// Usage:
//
//	# Validate files against a schema
//	vld validate --schema user users/*.json
//
//	# Japanese messages, JSON report
//	vld validate --schema service --lang ja --output json service.yaml
//
//	# Print a document as indented JSON, keeping member order
//	vld fmt service.yaml
//
//	# List the schemas with their descriptors
//	vld schemas
//
// Defaults come from VLD_* environment variables or a .env file; flags
// override them.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reoring/vld/internal/config"
)

// errFailed marks a run where at least one document did not validate.
var errFailed = errors.New("validation failed")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the exit code: 0 on success, 1
// when a document is invalid and 2 on usage or configuration errors.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	root := newRootCmd(cfg, stdout, stderr)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errFailed) {
			return 1
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	return 0
}
