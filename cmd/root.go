package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/carlot/internal/app"
	"github.com/zjrosen/carlot/internal/car"
	"github.com/zjrosen/carlot/internal/config"
	"github.com/zjrosen/carlot/internal/input"
	"github.com/zjrosen/carlot/internal/log"
	"github.com/zjrosen/carlot/internal/pubsub"
	"github.com/zjrosen/carlot/internal/registration"
)

func init() {
	// Query the terminal background before Bubble Tea owns stdin, otherwise the
	// OSC 11 reply can land in a text input.
	_ = lipgloss.HasDarkBackground()
}

const (
	envPrefix         = "CARLOT"
	localConfigPath   = ".carlot/config.yaml"
	shutdownTimeout   = 5 * time.Second
	defaultDebugLog   = "debug.log"
	defaultConfigName = "config"
)

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
	cfgErr    error
)

var rootCmd = &cobra.Command{
	Use:   "carlot",
	Short: "A terminal menu for an in-memory car lot",
	Long: `carlot keeps a lot of cars in memory and lets you add, list, search,
update and delete them from a keyboard-driven terminal menu.

Nothing is persisted: every run starts empty unless a seed file is given.

Examples:
  carlot                         # Start the menu
  carlot --seed cars.yaml        # Start with cars from a YAML fixture
  carlot --strict                # Reject malformed numbers instead of using 0
  carlot --debug                 # Debug log (log.path) and a live log line in the menu`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/carlot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"enable debug logging (also CARLOT_DEBUG=1)")
	rootCmd.PersistentFlags().Bool("strict", false,
		"reject malformed numbers instead of substituting 0")
	rootCmd.PersistentFlags().String("seed", "",
		"YAML file of cars to load at startup")

	_ = viper.BindPFlag("input.strict", rootCmd.PersistentFlags().Lookup("strict"))
	_ = viper.BindPFlag("seed_file", rootCmd.PersistentFlags().Lookup("seed"))
}

func initConfig() {
	cfg, cfgErr = loadConfig(viper.GetViper(), cfgFile)
}

// loadConfig reads configuration into v and decodes it.
// Lookup order without an explicit path: .carlot/config.yaml, then ~/.config/carlot/config.yaml.
// A missing config file is not an error.
func loadConfig(v *viper.Viper, path string) (config.Config, error) {
	setDefaults(v, config.Defaults())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(localConfigPath); err == nil {
		v.SetConfigFile(localConfigPath)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "carlot"))
		}
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config.Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var c config.Config
	if err := v.Unmarshal(&c); err != nil {
		return config.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return c, nil
}

// setDefaults registers every key so environment variables can override keys
// that are absent from the file.
func setDefaults(v *viper.Viper, d config.Config) {
	v.SetDefault("input.strict", d.Input.Strict)
	v.SetDefault("registration.county_codes", d.Registration.CountyCodes)
	v.SetDefault("cache.enabled", d.Cache.Enabled)
	v.SetDefault("cache.ttl", d.Cache.TTL)
	v.SetDefault("log.enabled", d.Log.Enabled)
	v.SetDefault("log.path", d.Log.Path)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("tracing.enabled", d.Tracing.Enabled)
	v.SetDefault("tracing.exporter", d.Tracing.Exporter)
	v.SetDefault("tracing.file_path", d.Tracing.FilePath)
	v.SetDefault("tracing.otlp_endpoint", d.Tracing.OTLPEndpoint)
	v.SetDefault("tracing.sample_rate", d.Tracing.SampleRate)
	v.SetDefault("tracing.service_name", d.Tracing.ServiceName)
	v.SetDefault("seed_file", d.SeedFile)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("ui.markdown_style", d.UI.MarkdownStyle)
}

// debugEnabled reports whether --debug or CARLOT_DEBUG asked for debug logging.
func debugEnabled() bool {
	return debugFlag || os.Getenv(envPrefix+"_DEBUG") != ""
}

func runApp(cmd *cobra.Command, _ []string) error {
	if cfgErr != nil {
		return cfgErr
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	closeLog, err := initLogging(cfg, debugEnabled())
	if err != nil {
		return err
	}
	defer closeLog()
	log.Info(log.CatConfig, "carlot starting", "version", version, "config", viper.ConfigFileUsed(), "strict", cfg.Input.Strict)

	provider, err := newTracingProvider(cfg)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			log.ErrorErr(log.CatTrace, "tracer shutdown", err)
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	events := pubsub.NewBroker[car.Car]()
	defer events.Close()

	svc, err := newCatalog(ctx, cfg, provider.Tracer(), events)
	if err != nil {
		return err
	}

	appCfg := app.Config{
		Catalog:       svc,
		Codes:         registration.NewValidator(cfg.Registration.CountyCodes),
		Parser:        input.Parser{Strict: cfg.Input.Strict},
		CarEvents:     events,
		ShowLogs:      debugEnabled(),
		ShowHelp:      cfg.UI.ShowHelp,
		MarkdownStyle: cfg.UI.MarkdownStyle,
	}
	if path := viper.ConfigFileUsed(); path != "" {
		stop := watchConfig(path, &appCfg)
		defer stop()
	}
	model := app.New(ctx, appCfg)

	final, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}

	if m, ok := final.(app.Model); ok && m.Exiting() {
		fmt.Fprintln(cmd.OutOrStdout(), app.ExitMessage)
	}
	stats := svc.CacheStats()
	log.Info(log.CatCache, "session cache stats", "hits", stats.Hits, "misses", stats.Misses, "flushes", stats.Flushes)
	return nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
