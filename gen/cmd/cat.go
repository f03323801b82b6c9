package cmd

import (
	"github.com/sarchlab/memtrace/datarecording"
	"github.com/sarchlab/memtrace/trace"
	"github.com/sarchlab/memtrace/tracing"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newCatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cat --db FILE [--trace ID]",
		Short: "Print traces recorded in a SQLite database.",
		Long: `Print traces recorded with --db, one per line, in recording ` +
			`order. With --trace, only the trace with the given ID is printed.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: runCat,
	}

	cmd.Flags().String("db", "", "SQLite database to read")
	cmd.Flags().String("trace", "", "ID of the trace to print")

	return cmd
}

func runCat(cmd *cobra.Command, args []string) error {
	path := getString(cmd, "db")
	if path == "" {
		return &trace.InvalidParameterError{
			Field:      "db",
			Constraint: "a database file is required",
		}
	}

	dr, err := datarecording.NewReader(path)
	if err != nil {
		return err
	}
	defer dr.Close()

	reader := tracing.NewDBTraceReader(dr)
	ctx := cmd.Context()

	ids := []string{}
	if id := getString(cmd, "trace"); id != "" {
		ids = append(ids, id)
	} else {
		records, err := reader.ListTraces(ctx)
		if err != nil {
			return err
		}

		for _, r := range records {
			ids = append(ids, r.ID)
		}
	}

	w := tracing.NewTextTraceWriter(cmd.OutOrStdout())

	for _, id := range ids {
		record, err := reader.ReadTrace(ctx, id)
		if err != nil {
			return err
		}

		log.WithFields(log.Fields{
			"id":      record.ID,
			"pattern": record.Pattern,
			"count":   record.Config.Count,
		}).Debug("Printing trace")

		if err := w.Write(record); err != nil {
			return err
		}
	}

	return w.Close()
}
