package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sarchlab/memtrace/trace"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Environment variables that override the built-in generation defaults.
// Flags given on the command line override them in turn.
const (
	EnvCount    = "MEMTRACE_COUNT"
	EnvStride   = "MEMTRACE_STRIDE"
	EnvBitWidth = "MEMTRACE_BITS"
	EnvSeed     = "MEMTRACE_SEED"
)

// loadEnvFile loads variables from path without overriding variables that are
// already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}

	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}

	log.Debugf("Loaded environment from %s", path)

	return nil
}

// resolveConfig layers defaults, environment, and flags, in that order.
func resolveConfig(cmd *cobra.Command) (trace.Config, error) {
	c := trace.DefaultConfig()

	countSet, err := applyEnv(&c)
	if err != nil {
		return c, err
	}

	flags := cmd.Flags()

	if flags.Changed("count") {
		c.Count, _ = flags.GetInt("count")
		countSet = true
	}

	if flags.Lookup("stride") != nil && flags.Changed("stride") {
		c.Stride, _ = flags.GetInt64("stride")
	}

	if flags.Lookup("bits") != nil && flags.Changed("bits") {
		c.BitWidth, _ = flags.GetInt("bits")
	}

	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		c.Seed, _ = flags.GetInt64("seed")
	}

	if !countSet {
		return c, &trace.InvalidParameterError{
			Field:      "count",
			Constraint: "count is required (--count or " + EnvCount + ")",
		}
	}

	return c, nil
}

func applyEnv(c *trace.Config) (bool, error) {
	countSet := false

	if v, ok, err := envInt(EnvCount, strconv.IntSize); err != nil {
		return false, err
	} else if ok {
		c.Count = int(v)
		countSet = true
	}

	if v, ok, err := envInt(EnvStride, 64); err != nil {
		return false, err
	} else if ok {
		c.Stride = v
	}

	if v, ok, err := envInt(EnvBitWidth, strconv.IntSize); err != nil {
		return false, err
	} else if ok {
		c.BitWidth = int(v)
	}

	if v, ok, err := envInt(EnvSeed, 64); err != nil {
		return false, err
	} else if ok {
		c.Seed = v
	}

	return countSet, nil
}

func envInt(name string, bitSize int) (int64, bool, error) {
	s, ok := os.LookupEnv(name)
	if !ok || s == "" {
		return 0, false, nil
	}

	v, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		return 0, false, &trace.InvalidParameterError{
			Field:      name,
			Constraint: fmt.Sprintf("%q is not an integer", s),
		}
	}

	return v, true, nil
}
