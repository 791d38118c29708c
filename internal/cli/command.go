package cli

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// options carries the parsed command line.
type options struct {
	path           string
	concurrency    int
	followSymlinks bool
	hidden         bool
	excludes       []string
	depth          int
	minSize        int64
	top            int
	output         string
	timeout        time.Duration
	history        bool
	noHistory      bool
	debug          bool
	version        bool
}

func help() {
	//nolint:forbidigo // Help output to console
	fmt.Println(heredoc.Doc(`
		treedu computes recursive directory sizes with a bounded pool of
		concurrent workers and reports the tree sorted by size.

		Usage:

			treedu [flags] [path]

		Positional Arguments:
		  path                   Directory to scan. Defaults to current directory if not specified.

		Directories are listed before files, largest first. Unreadable
		entries are reported and counted but never abort the scan.

		Flags:
	`))
	pflag.PrintDefaults()
}

// Execute runs the CLI with the provided arguments.
func (c CLI) Execute() error {
	var (
		opts       options
		minSizeStr string
	)

	allowedOutputs := []string{"table", "json"}

	pflag.IntVarP(&opts.concurrency, "concurrency", "c", 0, "Maximum concurrent filesystem operations (0=auto)")
	pflag.BoolVar(&opts.followSymlinks, "follow-symlinks", false, "Descend symlinked directories that stay inside the scan root")
	pflag.BoolVar(&opts.hidden, "hidden", false, "Include hidden entries (names starting with a dot)")
	pflag.StringSliceVarP(&opts.excludes, "exclude", "e", nil, "Glob patterns to exclude (e.g., '**/node_modules')")
	pflag.IntVarP(&opts.depth, "depth", "d", 0, "Maximum listing depth (0=unlimited); sizes always cover the whole tree")
	pflag.StringVar(&minSizeStr, "min-size", "0B", "Minimum entry size to list (e.g., 1KB)")
	pflag.IntVarP(&opts.top, "top", "t", 0, "Limit the listing to the N largest entries (0=all)")
	pflag.StringVarP(&opts.output, "output", "o", "table", "Output format: json or table")
	pflag.DurationVar(&opts.timeout, "timeout", 0, "Cancel the scan after this duration (0=none)")
	pflag.BoolVar(&opts.history, "history", false, "Show previous scans of the path and exit")
	pflag.BoolVar(&opts.noHistory, "no-history", false, "Do not record this scan in the history database")
	pflag.BoolVar(&opts.debug, "debug", false, "Enable debug output")
	pflag.BoolVarP(&opts.version, "version", "v", false, "Show version and exit")

	pflag.CommandLine.SortFlags = false
	pflag.Usage = help
	pflag.Parse()

	if opts.version {
		//nolint:forbidigo // Version output to console
		fmt.Println(c.version)

		return nil
	}

	if !slices.Contains(allowedOutputs, opts.output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", opts.output, allowedOutputs)
	}

	if opts.depth < 0 {
		return errors.New("depth cannot be negative")
	}

	if opts.concurrency < 0 {
		return errors.New("concurrency cannot be negative")
	}

	if pflag.NArg() == 0 {
		opts.path = "."
	} else {
		opts.path = pflag.Args()[0]
	}

	if minSizeStr != "" {
		size, err := humanize.ParseBytes(minSizeStr)
		if err != nil {
			return fmt.Errorf("invalid min-size: %w", err)
		}

		opts.minSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
	}

	return logic(opts)
}
