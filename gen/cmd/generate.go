package cmd

import (
	"fmt"

	"github.com/sarchlab/memtrace/datarecording"
	"github.com/sarchlab/memtrace/trace"
	"github.com/sarchlab/memtrace/tracing"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var patternDescriptions = map[trace.Pattern]struct {
	usage string
	short string
}{
	trace.Sequential: {
		usage: "sequential --count N [--stride S]",
		short: "Generate addresses 0, S, 2S, ... (N addresses).",
	},
	trace.Random: {
		usage: "random --count N [--bits B] [--seed S]",
		short: "Generate N addresses drawn uniformly from [0, 2^B-1].",
	},
	trace.Shuffled: {
		usage: "shuffled --count N [--stride S] [--seed S]",
		short: "Generate a seeded random permutation of a sequential trace.",
	},
}

func newPatternCmd(p trace.Pattern) *cobra.Command {
	desc := patternDescriptions[p]

	cmd := &cobra.Command{
		Use:   desc.usage,
		Short: desc.short,
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, p)
		},
	}

	cmd.Flags().Int("count", 0, "number of addresses to generate")

	if p == trace.Sequential || p == trace.Shuffled {
		cmd.Flags().Int64("stride", trace.DefaultStride,
			"byte distance between consecutive addresses")
	}

	if p == trace.Random {
		cmd.Flags().Int("bits", trace.DefaultBitWidth,
			"address bit width, addresses lie in [0, 2^bits-1]")
	}

	if p == trace.Random || p == trace.Shuffled {
		cmd.Flags().Int64("seed", trace.DefaultSeed, "random seed")
	}

	cmd.Flags().String("csv", "",
		"also write the trace to the given CSV file")
	cmd.Flags().String("db", "",
		"also record the trace in the given SQLite database")

	return cmd
}

func runGenerate(cmd *cobra.Command, p trace.Pattern) error {
	c, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"pattern":   p,
		"count":     c.Count,
		"stride":    c.Stride,
		"bit_width": c.BitWidth,
		"seed":      c.Seed,
	}).Debug("Generating trace")

	t, err := trace.Generate(p, c)
	if err != nil {
		return err
	}

	w, err := openWriters(cmd)
	if err != nil {
		return err
	}

	err = w.Write(tracing.NewRecord(p, c, t))

	if closeErr := w.Close(); err == nil {
		err = closeErr
	}

	return err
}

func openWriters(cmd *cobra.Command) (*tracing.MultiTraceWriter, error) {
	w := tracing.NewMultiTraceWriter(
		tracing.NewTextTraceWriter(cmd.OutOrStdout()))

	if path := getString(cmd, "csv"); path != "" {
		csvWriter := tracing.NewCSVTraceWriter(path)
		if err := csvWriter.Init(); err != nil {
			return nil, fmt.Errorf("create CSV sink: %w", err)
		}

		log.Debugf("Writing CSV trace to %s", csvWriter.Path())
		w.Add(csvWriter)
	}

	if path := getString(cmd, "db"); path != "" {
		recorder, err := datarecording.New(path)
		if err != nil {
			_ = w.Close()
			return nil, fmt.Errorf("create database sink: %w", err)
		}

		log.Debugf("Recording trace to %s", recorder.Path())
		w.Add(tracing.NewDBTraceWriter(recorder))
	}

	return w, nil
}
