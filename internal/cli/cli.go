package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tue-alga/Gridmap-sub002/pkg/buildinfo"
	"github.com/tue-alga/Gridmap-sub002/pkg/cache"
	"github.com/tue-alga/Gridmap-sub002/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mosaic"

	// Cache backends accepted by --cache.
	cacheFile  = "file"
	cacheRedis = "redis"
	cacheNone  = "none"

	defaultRedisAddr = "localhost:6379"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "mosaic computes mosaic cartograms on hexagonal and square grids",
		Long: `mosaic turns a weighted map into a mosaic cartogram: every face becomes a
connected region of grid cells whose count matches its weight, while neighbouring
faces stay neighbours.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.runCommand())
	root.AddCommand(c.finalizeCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.dualCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags select the checkpoint store of a command.
type cacheFlags struct {
	backend   string
	redisAddr string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.backend, "cache", cacheFile, "checkpoint cache: file, redis, none")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", defaultRedisAddr, "redis address (with --cache redis)")
	_ = cmd.RegisterFlagCompletionFunc("cache", fixedValues(cacheFile, cacheRedis, cacheNone))
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, flags)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache.Instrument(store), nil, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	switch strings.ToLower(flags.backend) {
	case cacheNone:
		return cache.NewNullCache(), nil
	case cacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: flags.redisAddr, Prefix: appName + ":"})
		if err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", flags.redisAddr, err)
		}
		return rc, nil
	case cacheFile, "":
		dir, err := cache.DefaultDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("invalid cache backend: %q (must be one of: file, redis, none)", flags.backend)
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatCoords}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// formatExt maps output formats to file suffixes.
var formatExt = map[string]string{
	pipeline.FormatCoords:  ".coords",
	pipeline.FormatJSON:    ".json",
	pipeline.FormatSVG:     ".svg",
	pipeline.FormatDOT:     ".dot",
	pipeline.FormatDualSVG: ".dual.svg",
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension, it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	for _, ext := range []string{".dual.svg", ".coords", ".json", ".svg", ".dot"} {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}

// outputPath names the file of one format. A single format with an
// explicit output goes to that path as given.
func outputPath(output, input, format string, single bool) string {
	if single && output != "" {
		return output
	}
	return basePath(output, input) + formatExt[format]
}
