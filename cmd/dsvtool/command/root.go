// Package command implements the dsvtool subcommands.
package command

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/shapestone/shape-dsv/pkg/dsv"
)

// rootArgs holds the persistent flags shared by every subcommand.
type rootArgs struct {
	Verbose bool
}

// New returns the dsvtool root command with all subcommands attached.
func New() *cobra.Command {
	args := &rootArgs{}

	root := &cobra.Command{
		Use:   "dsvtool",
		Short: "dsvtool reads, re-delimits, and loads delimiter-separated files.",
		Long: "`dsvtool` works with delimiter-separated value files.\n\n" +
			"`convert` rewrites a file with a different delimiter or quoting style.\n" +
			"`bus` loads a stops file and a routes file into a bus network and reports what was loaded.",
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&args.Verbose, "verbose", "v", false, "Log loaded entities and rejected rows to stderr.")

	root.AddCommand(newConvertCommand(args))
	root.AddCommand(newBusCommand(args))
	return root
}

// logger returns the logger for a command invocation, writing to the
// command's stderr.
func (a *rootArgs) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if a.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// openInput opens path for reading, or returns the command's stdin when path
// is empty or "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// delimiterValue is a pflag.Value holding a single-rune delimiter.
// It accepts a literal rune, the names "comma", "tab", "semicolon", and
// "pipe", and, when auto is allowed, "auto" for sniffing.
type delimiterValue struct {
	delim     rune
	auto      bool
	allowAuto bool
}

var _ pflag.Value = (*delimiterValue)(nil)

var namedDelimiters = map[string]rune{
	"comma":     ',',
	"tab":       '\t',
	`\t`:        '\t',
	"semicolon": ';',
	"pipe":      '|',
}

func (d *delimiterValue) String() string {
	if d.auto {
		return "auto"
	}
	return string(d.delim)
}

func (d *delimiterValue) Set(s string) error {
	if s == "auto" && d.allowAuto {
		d.auto = true
		return nil
	}
	if r, ok := namedDelimiters[s]; ok {
		d.delim, d.auto = r, false
		return nil
	}
	runes := []rune(s)
	if len(runes) != 1 || runes[0] == '\n' {
		return fmt.Errorf("%w: %q must be a single character", dsv.ErrInvalidDelimiter, s)
	}
	d.delim, d.auto = runes[0], false
	return nil
}

func (d *delimiterValue) Type() string {
	return "delimiter"
}
