package mtc

import (
	"fmt"

	"github.com/sokinpui/mtc/cli"
)

// Config for using mtc as a library.
type Config struct {
	// Root is the project root all reads and writes are confined to.
	// Empty means the current working directory.
	Root string
	// RulesPath optionally names a YAML file configuring the accepted
	// filename-declaration conventions.
	RulesPath string
	// KeepGoing continues with remaining blocks after a patch failure
	// instead of aborting the run.
	KeepGoing bool
}

// Apply parses the given content string and applies the changes to files
// under the configured root. It returns the outcome buckets in a map.
func Apply(content string, config Config) (map[string][]string, error) {
	cliCfg := &cli.Config{
		Root:      config.Root,
		Rules:     config.RulesPath,
		KeepGoing: config.KeepGoing,
		Quiet:     true,
	}

	app, err := New(cliCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mtc app: %w", err)
	}

	summary, err := app.Process(content)
	if err != nil {
		return nil, err
	}

	return map[string][]string{
		"Created":  summary.Created,
		"Modified": summary.Modified,
		"Renamed":  summary.Renamed,
		"Deleted":  summary.Deleted,
		"Skipped":  summary.Skipped,
		"Failed":   summary.Failed,
	}, nil
}
