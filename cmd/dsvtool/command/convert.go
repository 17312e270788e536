package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-dsv/internal/mmapfile"
	"github.com/shapestone/shape-dsv/pkg/dsv"
)

// sniffSize is how much input is inspected when the input delimiter is auto.
const sniffSize = 4 << 10

type convertArgs struct {
	InDelim  delimiterValue
	OutDelim delimiterValue
	QuoteAll bool
	Mmap     bool
}

func newConvertCommand(root *rootArgs) *cobra.Command {
	args := &convertArgs{
		InDelim:  delimiterValue{delim: dsv.DefaultDelimiter, allowAuto: true},
		OutDelim: delimiterValue{delim: dsv.DefaultDelimiter},
	}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Rewrite a delimiter-separated file with another delimiter.",
		Long: "Reads rows from file, or stdin when file is omitted or `-`, and writes them to stdout.\n\n" +
			"With `--in-delim auto` the input delimiter is guessed from the first few kilobytes.",
		Example: "dsvtool convert --in-delim auto --out-delim tab data.csv > data.tsv",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, argv []string) error {
			path := ""
			if len(argv) > 0 {
				path = argv[0]
			}
			return commandConvert(cmd, root, args, path)
		},
	}

	cmd.Flags().Var(&args.InDelim, "in-delim", "Input delimiter: a character, comma, tab, semicolon, pipe, or auto.")
	cmd.Flags().Var(&args.OutDelim, "out-delim", "Output delimiter: a character, comma, tab, semicolon, or pipe.")
	cmd.Flags().BoolVar(&args.QuoteAll, "quote-all", false, "Quote every output field.")
	cmd.Flags().BoolVar(&args.Mmap, "mmap", false, "Memory-map the input file instead of streaming it.")
	return cmd
}

func commandConvert(cmd *cobra.Command, root *rootArgs, args *convertArgs, path string) error {
	logger := root.logger(cmd)

	src, sample, cleanup, err := openSource(cmd, path, args.Mmap, args.InDelim.auto)
	if err != nil {
		return err
	}
	defer cleanup()

	inDelim := args.InDelim.delim
	if args.InDelim.auto {
		inDelim = dsv.DetectDelimiter(sample)
		logger.Debug("convert: detected delimiter", "delimiter", string(inDelim))
	}

	reader := dsv.NewReader(src, inDelim)
	sink := dsv.NewWriterSink(cmd.OutOrStdout())
	writer := dsv.NewWriter(sink, args.OutDelim.delim, args.QuoteAll)

	rows := 0
	for row := range reader.Rows() {
		// A failed read cuts the row short.
		if err := reader.Err(); err != nil {
			return fmt.Errorf("convert: read input: %w", err)
		}
		if err := writer.WriteRow(row); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
		rows++
	}
	if err := reader.Err(); err != nil {
		return fmt.Errorf("convert: read input: %w", err)
	}
	if rows > 0 {
		if err := sink.Put('\n'); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}
	if err := sink.Flush(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	logger.Debug("convert: done", "rows", rows)
	return nil
}

// openSource opens the convert input. When sniff is set, sample holds up to
// sniffSize bytes from the start of the input, which are still read by the
// returned source.
func openSource(cmd *cobra.Command, path string, mmap, sniff bool) (dsv.Source, string, func(), error) {
	var sample string
	if mmap && path != "" && path != "-" {
		m, err := mmapfile.Open(path)
		if err != nil {
			return nil, "", nil, fmt.Errorf("open input: %w", err)
		}
		data := m.Bytes()
		if sniff {
			sample = string(data[:min(len(data), sniffSize)])
		}
		return dsv.NewBytesSource(data), sample, func() { m.Close() }, nil
	}

	in, err := openInput(cmd, path)
	if err != nil {
		return nil, "", nil, err
	}
	br := bufio.NewReaderSize(in, sniffSize)
	if sniff {
		// Peek reports io.EOF for inputs shorter than sniffSize; the bytes it
		// returns are still the whole input.
		data, err := br.Peek(sniffSize)
		if err != nil && !errors.Is(err, io.EOF) {
			in.Close()
			return nil, "", nil, fmt.Errorf("convert: read input: %w", err)
		}
		sample = string(data)
	}
	return dsv.NewReaderSource(br), sample, func() { in.Close() }, nil
}
