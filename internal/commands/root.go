package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/balkashynov/tinytodo/internal/config"
	"github.com/balkashynov/tinytodo/internal/db"
	"github.com/balkashynov/tinytodo/internal/lists"
	"github.com/balkashynov/tinytodo/internal/logging"
	"github.com/balkashynov/tinytodo/internal/settings"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tinytodo",
	Short: "Task lists from the terminal and over HTTP",
	Long: `tinytodo manages task lists: ordering, visibility flags, publication
and cleanup of completed tasks. Use it from the command line, the
interactive browser, or serve the lists API over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// app is what a command needs once config is loaded and the database is open.
type app struct {
	cfg     config.Config
	gdb     *gorm.DB
	logger  *slog.Logger
	manager *lists.Manager
	tasks   *db.TaskStore
}

// loadConfig resolves the configuration and applies the persistent flags on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("get working directory: %w", err)
	}

	explicit, _ := cmd.Flags().GetString("config")
	cfg, _, err := config.Load(wd, explicit, os.Environ())
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	override := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	override("db", &cfg.Database)
	override("settings-dir", &cfg.SettingsDir)
	override("table-prefix", &cfg.TablePrefix)
	override("log-level", &cfg.LogLevel)

	return cfg, config.Validate(cfg)
}

// openApp loads config, opens the database and builds the list manager.
func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, cfg.LogLevel)
	slog.SetDefault(logger)

	gdb, err := db.Open(cfg.Database, cfg.TablePrefix)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", cfg.Database)

	manager := lists.NewManager(
		db.NewListStore(gdb),
		settings.NewFileStore(cfg.SettingsDir),
		lists.WithAllTasksName(cfg.AllTasksName),
		lists.WithLogger(logger),
	)

	return &app{
		cfg:     cfg,
		gdb:     gdb,
		logger:  logger,
		manager: manager,
		tasks:   db.NewTaskStore(gdb),
	}, nil
}

// withApp wraps a command function to open the application first
func withApp(fn func(cmd *cobra.Command, args []string, a *app) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := db.Close(a.gdb); err != nil {
				a.logger.Warn("failed closing database", logging.Error(err))
			}
		}()
		return fn(cmd, args, a)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tinytodo %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./"+config.FileName+")")
	rootCmd.PersistentFlags().String("db", "", "SQLite database path")
	rootCmd.PersistentFlags().String("settings-dir", "", "Directory of settings domains")
	rootCmd.PersistentFlags().String("table-prefix", "", "Table name prefix")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.SetHelpCommand(helpCmd)
	rootCmd.AddCommand(versionCmd)
}
