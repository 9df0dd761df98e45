package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/stint/internal/app"
	"github.com/zjrosen/stint/internal/cachemanager"
	"github.com/zjrosen/stint/internal/config"
	"github.com/zjrosen/stint/internal/edits"
	"github.com/zjrosen/stint/internal/log"
	"github.com/zjrosen/stint/internal/mode"
	"github.com/zjrosen/stint/internal/mode/shared"
	"github.com/zjrosen/stint/internal/store"
	"github.com/zjrosen/stint/internal/tracing"
	"github.com/zjrosen/stint/internal/ui/styles"
	"github.com/zjrosen/stint/internal/undo"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop and appearing as
	// garbage text in input fields.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:     "stint",
	Short:   "A terminal ui for time and project administration",
	Long:    `A terminal user interface for booking time on projects, administering customers, projects and activities, and reviewing reports. Every change is undoable.`,
	Version: version,
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/stint/config.yaml)")
	rootCmd.PersistentFlags().String("db", "",
		"path to the sqlite database file")
	rootCmd.PersistentFlags().String("log-level", "",
		"minimum log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false,
		"enable debug logging and the ctrl+x log overlay")
	rootCmd.Flags().Bool("no-auto-refresh", false,
		"disable reload when the database file changes on disk")

	// Bind flags to viper
	_ = viper.BindPFlag("db.path", rootCmd.PersistentFlags().Lookup("db"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("db.path", defaults.DB.Path)
	viper.SetDefault("db.auto_refresh", defaults.DB.AutoRefresh)
	viper.SetDefault("undo.capacity", defaults.Undo.Capacity)
	viper.SetDefault("log.level", defaults.Log.Level)
	viper.SetDefault("log.file", defaults.Log.File)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.file_path", defaults.Tracing.FilePath)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)
	viper.SetDefault("tracing.service_name", defaults.Tracing.ServiceName)
	viper.SetDefault("ui.theme", defaults.UI.Theme)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .stint/config.yaml (current directory)
		// 2. ~/.config/stint/config.yaml (user config)
		if _, err := os.Stat(".stint/config.yaml"); err == nil {
			viper.SetConfigFile(".stint/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "stint"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .stint/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			defaultPath := filepath.Join(".stint", "config.yaml")
			if writeErr := config.WriteDefaultConfig(defaultPath); writeErr == nil {
				viper.SetConfigFile(defaultPath)
				_ = viper.ReadInConfig()
			}
			// If write fails, just continue with defaults (no config file)
		}
	}

	_ = viper.Unmarshal(&cfg)
}

// initLogging wires the file logger. Debug mode logs everything through
// tea.LogToFile; otherwise the configured log file and level apply, and
// with no file configured logging stays off entirely.
func initLogging(debug bool) (func(), error) {
	if debug {
		logPath := os.Getenv("STINT_LOG")
		if logPath == "" {
			logPath = "debug.log"
		}
		return log.InitWithTeaLog(logPath, "stint")
	}

	if cfg.Log.File == "" {
		return nil, nil
	}
	cleanup, err := log.Init(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	log.SetMinLevel(log.ParseLevel(cfg.Log.Level))
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	debug := debugFlag || os.Getenv("STINT_DEBUG") != ""
	cleanup, err := initLogging(debug)
	if err != nil {
		return fmt.Errorf("initializing logging: %w", err)
	}
	if cleanup != nil {
		defer cleanup()
	}

	tracerProvider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = tracerProvider.Shutdown(ctx)
	}()

	// Handle --no-auto-refresh flag (negated logic)
	if noAutoRefresh, _ := cmd.Flags().GetBool("no-auto-refresh"); noAutoRefresh {
		cfg.DB.AutoRefresh = false
	}

	styles.ApplyTheme(cfg.UI.Theme)

	dbPath := cfg.DB.Path
	if dbPath == "" {
		dbPath = config.DefaultDBPath()
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer func() { _ = s.Close() }()

	coordinator := undo.New(undo.Config{
		History: undo.NewHistory(cfg.Undo.Capacity),
		Tracer:  tracerProvider.Tracer(),
	})
	defer coordinator.Close()

	// Store the config file path for reference by the modes
	configFilePath := viper.ConfigFileUsed()
	if configFilePath == "" {
		configFilePath = filepath.Join(".stint", "config.yaml")
	}

	services := mode.Services{
		Store:       s,
		Coordinator: coordinator,
		Edits:       edits.NewFactory(s, nil),
		Config:      &cfg,
		ConfigPath:  configFilePath,
		DBPath:      dbPath,
		LookupCache: cachemanager.NewInMemoryCacheManager[string, string](
			"lookup", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		ReportCache: cachemanager.NewInMemoryCacheManager[string, []store.ReportRow](
			"report", cachemanager.DefaultExpiration, cachemanager.DefaultCleanupInterval),
		Clipboard: shared.SystemClipboard{},
		Clock:     shared.RealClock{},
	}

	// Zone markers drive mouse hit testing throughout the UI
	zone.NewGlobal()

	model := app.New(services, debug)
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()

	// Clean up listeners and the file watcher
	if closeErr := model.Close(); closeErr != nil && err == nil {
		err = closeErr
	}

	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
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
