// Package cli implements the bstviz command-line interface.
package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/cache"
	"github.com/matzehuels/bstviz/pkg/errors"
	bstio "github.com/matzehuels/bstviz/pkg/io"
	"github.com/matzehuels/bstviz/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "bstviz"

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
	// Config is loaded before every command runs.
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	r.TTL = c.Config.Cache.TTL.Duration
	return r, nil
}

// newCache picks the artifact store: none when disabled, redis when a URL is
// configured, the XDG cache directory otherwise.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache || c.Config.Cache.Disabled {
		return cache.NewNullCache(), nil
	}
	if url := c.Config.Cache.RedisURL; url != "" {
		return cache.NewRedisCache(ctx, url, appName+":")
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("cache directory unavailable, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/bstviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/bstviz/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// =============================================================================
// Input Helpers
// =============================================================================

// readInput returns the raw records: stdin when args are empty or "-",
// the joined arguments otherwise.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		return io.ReadAll(cmd.InOrStdin())
	}
	return []byte(strings.Join(args, " ")), nil
}

// readTrees builds the trees named by args, reporting tree warnings on the
// CLI logger. A non-empty fromJSON loads a single tree exported by
// "bstviz export" instead, and then args must be empty.
func (c *CLI) readTrees(cmd *cobra.Command, args []string, delimiter, fromJSON string) ([]*bst.Tree, error) {
	diag := loggerFromContext(cmd.Context())
	if fromJSON != "" {
		if len(args) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "key records cannot be combined with --from-json")
		}
		t, err := bstio.ImportJSON(fromJSON, bst.WithDiagnostics(diag))
		if err != nil {
			return nil, err
		}
		return []*bst.Tree{t}, nil
	}

	input, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	if delimiter == "" {
		delimiter = c.Config.Render.Delimiter
	}
	return bstio.ReadTrees(bytes.NewReader(input), bstio.ReadOptions{
		Delimiter:   delimiter,
		Diagnostics: diag,
	})
}

// parseFormats parses a comma-separated format string into a slice,
// dropping blanks and repeats.
func parseFormats(s string) []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return []string{pipeline.DefaultFormat}
	}
	return out
}
