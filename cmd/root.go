package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/econdata/cpidb/internal/iofs"
	"github.com/econdata/cpidb/internal/iologger"
	app "github.com/econdata/cpidb/pkg/cpidb"
	"github.com/econdata/cpidb/pkg/config"
	"github.com/econdata/cpidb/pkg/term"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "cpidb",
	Short:   "cpidb builds a CPI-U database from BLS flat files",
	Long: `cpidb manages the lifecycle of a Consumer Price Index database.

It downloads the CPI-U flat files published by the U.S. Bureau of
Labor Statistics, loads them into a star schema (areas, items,
periods, data) and maintains a denormalized data_view for reporting.
The storage target is a SQLite file or a PostgreSQL database.

Typical workflow:
  cpidb create            initialize the schema in cpi-u.db
  cpidb update            download BLS files and load them
  cpidb verify            report observations with unknown codes

The target location comes from the DATABASE_URL environment variable,
from ~/.config/cpidb/config.yaml, or from the create command's
positional argument.`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		term.PrintError(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		term.PrintError(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		term.PrintError(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		term.PrintError(err)
		return err
	}

	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		term.PrintError(err)
		return err
	}

	term.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		term.PrintError(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		term.PrintError(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded configuration.
// Creates log file in the proper location now that we know HomeDir.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "cpidb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for cpidb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getUpdateCmd())
	rootCmd.AddCommand(getVerifyCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initDefaults(v)
	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

// initDefaults seeds viper with the config defaults, so fields absent
// from config.yaml and the environment unmarshal to their default
// values instead of Go zero values. Without this a commented-out
// "progress" line would read as false.
func initDefaults(v *viper.Viper) {
	def := config.New()

	v.SetDefault("database.batch_size", def.Database.BatchSize)
	v.SetDefault("fetch.timeout_sec", def.Fetch.TimeoutSec)
	v.SetDefault("fetch.retry_max", def.Fetch.RetryMax)
	v.SetDefault("fetch.user_agent", def.Fetch.UserAgent)
	v.SetDefault("load.progress", def.Load.Progress)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("log.destination", def.Log.Destination)
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("CPIDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration. The target keeps its historical name
	// DATABASE_URL.
	v.BindEnv("database.url", "DATABASE_URL")
	v.BindEnv("database.batch_size", "DATABASE_BATCH_SIZE")

	// Fetch configuration
	v.BindEnv("fetch.timeout_sec", "FETCH_TIMEOUT_SEC")
	v.BindEnv("fetch.retry_max", "FETCH_RETRY_MAX")
	v.BindEnv("fetch.user_agent", "FETCH_USER_AGENT")

	// Load configuration
	v.BindEnv("load.progress", "LOAD_PROGRESS")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	v.AutomaticEnv()
}
