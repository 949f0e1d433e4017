package cli

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Config holds all the command-line flag values.
type Config struct {
	File        string
	Root        string
	Rules       string
	KeepGoing   bool
	NoAnimation bool
	Quiet       bool
}

// ParseFlags defines and parses command-line flags using pflag.
func ParseFlags() (*Config, error) {
	cfg := &Config{}

	pflag.StringVarP(&cfg.File, "file", "f", "", "Read the document from a file instead of stdin or the clipboard.")
	pflag.StringVarP(&cfg.Root, "root", "C", "", "Project root for all reads and writes (default: current directory).")
	pflag.StringVarP(&cfg.Rules, "rules", "r", "", "YAML file configuring the filename-declaration conventions.")
	pflag.BoolVarP(&cfg.KeepGoing, "keep-going", "k", false, "Continue with remaining blocks after a patch or diff failure.")
	pflag.BoolVar(&cfg.NoAnimation, "no-animation", false, "Disable the TUI and print a plain summary.")
	pflag.BoolVarP(&cfg.Quiet, "quiet", "q", false, "Suppress per-block progress messages.")

	pflag.Usage = func() {
		fmt.Println("Usage: mtc [flags]")
		fmt.Println("\nExtract code blocks and diffs from an LLM response and apply them to files.")
		fmt.Println("\nExample: pbpaste | mtc -C ./project")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	// A single positional argument names the input file, same as -f.
	switch args := pflag.Args(); {
	case len(args) == 1 && cfg.File == "":
		cfg.File = args[0]
	case len(args) > 0:
		return nil, fmt.Errorf("error: unexpected argument %q", args[0])
	}

	return cfg, nil
}
