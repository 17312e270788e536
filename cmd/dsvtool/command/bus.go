package command

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-dsv/pkg/bussystem"
	"github.com/shapestone/shape-dsv/pkg/dsv"
)

type busArgs struct {
	Stops  string
	Routes string
	Delim  delimiterValue
	Strict bool
}

func newBusCommand(root *rootArgs) *cobra.Command {
	args := &busArgs{
		Delim: delimiterValue{delim: dsv.DefaultDelimiter},
	}

	cmd := &cobra.Command{
		Use:   "bus",
		Short: "Load a bus network from stops and routes files.",
		Long: "Loads the stops file (columns stop_id, node_id) and the routes file (columns route, stop_id)\n" +
			"and prints the number of stops and routes followed by each route and its stop count.\n\n" +
			"Loading of each file stops at its first invalid row. Rejected rows are logged as warnings,\n" +
			"or fail the command with `--strict`.",
		Example: "dsvtool bus --stops stops.csv --routes routes.csv",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return commandBus(cmd, root, args)
		},
	}

	cmd.Flags().StringVar(&args.Stops, "stops", "", "Path to the stops file.")
	cmd.Flags().StringVar(&args.Routes, "routes", "", "Path to the routes file.")
	cmd.Flags().Var(&args.Delim, "delim", "Delimiter of both files.")
	cmd.Flags().BoolVar(&args.Strict, "strict", false, "Fail when either file does not load completely.")
	_ = cmd.MarkFlagRequired("stops")
	_ = cmd.MarkFlagRequired("routes")
	return cmd
}

func commandBus(cmd *cobra.Command, root *rootArgs, args *busArgs) error {
	logger := root.logger(cmd)

	stopsFile, err := openInput(cmd, args.Stops)
	if err != nil {
		return err
	}
	defer stopsFile.Close()

	routesFile, err := openInput(cmd, args.Routes)
	if err != nil {
		return err
	}
	defer routesFile.Close()

	sys, loadErr := bussystem.NewCSVBusSystem(
		dsv.NewReader(dsv.NewReaderSource(stopsFile), args.Delim.delim),
		dsv.NewReader(dsv.NewReaderSource(routesFile), args.Delim.delim),
		bussystem.WithLogger(logger),
		bussystem.WithNames(args.Stops, args.Routes),
	)
	if loadErr != nil {
		if args.Strict || errors.Is(loadErr, bussystem.ErrRead) {
			return fmt.Errorf("bus: %w", loadErr)
		}
		logger.Warn("bus: incomplete load", "err", loadErr)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "stops: %d\n", sys.StopCount())
	fmt.Fprintf(out, "routes: %d\n", sys.RouteCount())
	for i := 0; i < sys.RouteCount(); i++ {
		route := sys.RouteByIndex(i)
		fmt.Fprintf(out, "  %s: %d stops\n", route.Name(), route.StopCount())
	}
	return nil
}
