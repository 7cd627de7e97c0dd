// Package cmd implements the worlddb command line interface.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/worldable/worlddb/internal/iofs"
	"github.com/worldable/worlddb/internal/iologger"
	"github.com/worldable/worlddb/pkg/config"
	app "github.com/worldable/worlddb/pkg/worlddb"
)

var (
	homeDir string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "worlddb",
	Short:   "worlddb manages geographic reference data in PostgreSQL",
	Long: `worlddb installs and maintains a geographic reference database:
continents, subregions, countries, states, cities, languages, currencies
and timezones, plus a polymorphic worldables table host applications use
to attach their own records to those entities.

The lifecycle has four operations:
  - install:   create tables and seed them from bundled and remote datasets
  - link:      backfill parent references from denormalized metadata
  - health:    report installation completeness and linkage quality
  - uninstall: remove component tables with a dependent-handling strategy

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (WORLDDB_*)
  3. Config file (~/.config/worlddb/config.yaml)
  4. Built-in defaults`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initial logging with defaults; reconfigured below once the
	// user's config is loaded.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	if err = iofs.EnsureSourcesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for worlddb")

	rootCmd.AddCommand(getInstallCmd())
	rootCmd.AddCommand(getUninstallCmd())
	rootCmd.AddCommand(getLinkCmd())
	rootCmd.AddCommand(getHealthCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

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

func initEnvVars(v *viper.Viper) {
	// Bound manually so the allowed env variables stay visible. They
	// match the persistent fields of config.ToOptions().
	v.SetEnvPrefix("WORLDDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database", "DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")

	v.BindEnv("seed.batch_size", "SEED_BATCH_SIZE")
	v.BindEnv("seed.http_timeout_sec", "SEED_HTTP_TIMEOUT_SEC")

	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	v.AutomaticEnv()
}
