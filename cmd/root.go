package cmd

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	DB           *sql.DB
	DriverName   string // "mysql", "postgres", "sqlserver", "oracle", "sqlite3"
	SchemaName   string // resolved schema passed to the Analyzer
	ActiveConfig *DBConfig
	Logger       = newLogger()

	cfgFile string
	verbose bool
)

var RootCmd = &cobra.Command{
	Use:   "repo-sync",
	Short: "Keep a repository model in sync with a live database",
	Long: `
repo-sync reads the structure of a database (tables, columns, foreign keys)
and reconciles it with a repository model file, writing a change log of
every addition, update and removal.
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			Logger.SetLevel(log.DebugLevel)
		}

		config, err := ResolveDBConfig()
		if err != nil {
			return err
		}
		ActiveConfig = config
		DriverName = config.Driver

		DB, err = sql.Open(DriverName, config.DSN)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		if err := DB.PingContext(cmd.Context()); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		// Fetch current database name when MySQL runs without an explicit schema
		SchemaName = config.Schema
		if SchemaName == "" && DriverName == "mysql" {
			if err := DB.QueryRowContext(cmd.Context(), "SELECT DATABASE()").Scan(&SchemaName); err != nil {
				return fmt.Errorf("failed to get database name: %w", err)
			}
			if SchemaName == "" {
				return fmt.Errorf("no database selected in DSN")
			}
			config.Schema = SchemaName
		}

		Logger.Debug("connected", "name", config.Name, "driver", DriverName, "schema", SchemaName)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if DB == nil {
			return nil
		}
		return DB.Close()
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := RootCmd.ExecuteContext(ctx); err != nil {
		Logger.Error(err)
		stop()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./repo-sync.yaml)")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	flags.String("dsn", "", "Database Source Name (DSN)")
	flags.String("driver", "", "Database driver (mysql, postgres, sqlserver, oracle, sqlite3)")
	flags.String("catalog", "", "Catalog recorded on the entities")
	flags.String("schema", "", "Database schema to read (dialect default when empty)")
	flags.String("pattern", "", "Table name pattern (SQL LIKE)")
	flags.StringSlice("types", nil, "Table types to read (TABLE, VIEW, ...)")
	flags.StringP("model", "m", "", "Repository model file")

	bindRootFlags()
}

// bindRootFlags binds the persistent flags to viper keys (Flag > Env > Config > Default).
func bindRootFlags() {
	flags := RootCmd.PersistentFlags()
	viper.BindPFlag("database.dsn", flags.Lookup("dsn"))
	viper.BindPFlag("database.driver", flags.Lookup("driver"))
	viper.BindPFlag("metadata.catalog", flags.Lookup("catalog"))
	viper.BindPFlag("metadata.schema", flags.Lookup("schema"))
	viper.BindPFlag("metadata.table_pattern", flags.Lookup("pattern"))
	viper.BindPFlag("metadata.table_types", flags.Lookup("types"))
	viper.BindPFlag("model.file", flags.Lookup("model"))

	viper.SetDefault("model.file", "repository.yaml")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// .env is optional; values already in the environment win.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		Logger.Warn("failed to load .env", "err", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("repo-sync")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("REPO_SYNC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		Logger.Info("using config file", "file", viper.ConfigFileUsed())
	}
}

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
}
