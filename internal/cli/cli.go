package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/go-opendota/pkg/buildinfo"
	"github.com/matzehuels/go-opendota/pkg/cache"
	"github.com/matzehuels/go-opendota/pkg/opendota"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "opendota"

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

	// Global flag values, bound in RootCommand.
	apiKey   string
	cacheDir string
	noCache  bool
	refresh  bool
	jsonOut  bool

	configOnce sync.Once
	config     fileConfig
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
		Use:   "opendota",
		Short: "Opendota queries Dota 2 statistics from the terminal",
		Long: `Opendota is a CLI for the OpenDota API: match details, match feeds,
player profiles and histories, hero data, and fantasy scoring.

Responses are cached on disk, so repeated queries are instant and free.
Unauthenticated calls are spaced apart to respect the free-tier rate limit;
set an API key (--api-key, config file, or OPENDOTA_API_KEY) to lift it.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true, // main prints the final error
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Make the logger reachable from any command context
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.apiKey, "api-key", "", "OpenDota API key (overrides config file and environment)")
	flags.StringVar(&c.cacheDir, "cache-dir", "", "response cache directory")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the response cache")
	flags.BoolVarP(&c.refresh, "refresh", "r", false, "bypass cached responses and refetch")
	flags.BoolVar(&c.jsonOut, "json", false, "print raw JSON instead of formatted output")

	// Register all subcommands
	root.AddCommand(c.matchCommand())
	root.AddCommand(c.matchesCommand())
	root.AddCommand(c.playerCommand())
	root.AddCommand(c.heroesCommand())
	root.AddCommand(c.fantasyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Client Factory
// =============================================================================

// cacheStatus observes client events so commands can report whether their
// data came from the cache or the network.
type cacheStatus struct {
	opendota.NoopHooks
	requests atomic.Int32
}

func (s *cacheStatus) OnRequest(context.Context, string, string) {
	s.requests.Add(1)
}

// Cached reports whether every fetch so far was served from the cache.
func (s *cacheStatus) Cached() bool {
	return s.requests.Load() == 0
}

// loadConfig parses the config file once and caches the result. Parse
// failures are reported and treated as an absent file.
func (c *CLI) loadConfig() fileConfig {
	c.configOnce.Do(func() {
		path, err := configPath()
		if err != nil {
			return
		}
		cfg, err := readConfigFile(path)
		if err != nil {
			printWarning("Ignoring config file: %v", err)
			return
		}
		c.config = cfg
	})
	return c.config
}

// newClient builds an API client from the config file and global flags.
// Flags override file values; the library falls back to the environment
// for the API key. The returned cacheStatus tracks cache effectiveness
// for the lifetime of the client.
func (c *CLI) newClient(extra ...opendota.Option) (*opendota.Client, *cacheStatus, error) {
	cfg := c.loadConfig()
	status := &cacheStatus{}

	opts := []opendota.Option{
		opendota.WithLogger(c.Logger),
		opendota.WithHooks(status),
	}

	if cfg.BaseURL != "" {
		opts = append(opts, opendota.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout.Duration > 0 {
		opts = append(opts, opendota.WithTimeout(cfg.Timeout.Duration))
	}
	if cfg.MinInterval.Duration > 0 {
		opts = append(opts, opendota.WithMinInterval(cfg.MinInterval.Duration))
	}
	if cfg.AuthMethod == "query" {
		opts = append(opts, opendota.WithAuthMethod(opendota.AuthQuery))
	}
	if len(cfg.Fantasy) > 0 {
		opts = append(opts, opendota.WithFantasyWeights(cfg.Fantasy))
	}

	apiKey := cfg.APIKey
	if c.apiKey != "" {
		apiKey = c.apiKey
	}
	if apiKey != "" {
		opts = append(opts, opendota.WithAPIKey(apiKey))
	}

	if c.noCache {
		opts = append(opts, opendota.WithStore(cache.NewNullStore()))
	} else if dir, err := c.effectiveCacheDir(); err == nil {
		opts = append(opts, opendota.WithCacheDir(dir))
	}

	client, err := opendota.New(append(opts, extra...)...)
	if err != nil {
		return nil, nil, err
	}
	return client, status, nil
}

// =============================================================================
// Paths
// =============================================================================

// effectiveCacheDir resolves the cache directory: the --cache-dir flag,
// then the config file, then the XDG default.
func (c *CLI) effectiveCacheDir() (string, error) {
	if c.cacheDir != "" {
		return c.cacheDir, nil
	}
	if dir := c.loadConfig().CacheDir; dir != "" {
		return dir, nil
	}
	return defaultCacheDir()
}

// defaultCacheDir returns the cache directory using XDG standard
// (~/.cache/opendota/).
func defaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Output Helpers
// =============================================================================

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// parseID parses a positive numeric command argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", what, arg)
	}
	return id, nil
}
