package cmd

import (
	"fmt"
	"strings"

	"repo-sync/internal/schema"

	"github.com/spf13/viper"
)

type DBConfig struct {
	Name         string   `mapstructure:"name"`
	Driver       string   `mapstructure:"driver"`
	DSN          string   `mapstructure:"dsn"`
	Active       bool     `mapstructure:"active"`
	Catalog      string   `mapstructure:"catalog"`
	Schema       string   `mapstructure:"schema"`
	TablePattern string   `mapstructure:"table_pattern"`
	TableTypes   []string `mapstructure:"table_types"`
}

// Filter returns the metadata filter described by the configuration.
func (c *DBConfig) Filter() schema.Filter {
	return schema.Filter{
		Catalog:      c.Catalog,
		Schema:       c.Schema,
		TablePattern: c.TablePattern,
		TableTypes:   c.TableTypes,
	}
}

// GetActiveDBConfig returns the currently active entry of the databases list.
func GetActiveDBConfig() (*DBConfig, error) {
	var configs []DBConfig

	if err := viper.UnmarshalKey("databases", &configs); err != nil {
		return nil, fmt.Errorf("failed to parse databases config: %w", err)
	}

	var activeConfig *DBConfig
	count := 0

	for i := range configs {
		if configs[i].Active {
			activeConfig = &configs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active database found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active databases found (only one can be active)")
	}

	return activeConfig, nil
}

// ResolveDBConfig builds the configuration of this run.
//
// The active entry of "databases" is used when the list exists, otherwise the
// single "database" section. Explicit database.* and metadata.* settings
// (flags, env, config) override the entry.
func ResolveDBConfig() (*DBConfig, error) {
	var config *DBConfig
	if viper.IsSet("databases") {
		active, err := GetActiveDBConfig()
		if err != nil {
			return nil, err
		}
		config = active
	} else {
		config = &DBConfig{Name: "default", Active: true}
	}

	if dsn := viper.GetString("database.dsn"); dsn != "" {
		config.DSN = dsn
	}
	if driver := viper.GetString("database.driver"); driver != "" {
		config.Driver = driver
	}
	if config.DSN == "" {
		return nil, fmt.Errorf("database.dsn is required (via flag, env or config)")
	}
	if config.Driver == "" {
		config.Driver = detectDriver(config.DSN)
	}
	config.Driver = normalizeDriver(config.Driver)

	if v := viper.GetString("metadata.catalog"); v != "" {
		config.Catalog = v
	}
	if v := viper.GetString("metadata.schema"); v != "" {
		config.Schema = v
	}
	if v := viper.GetString("metadata.table_pattern"); v != "" {
		config.TablePattern = v
	}
	if v := viper.GetStringSlice("metadata.table_types"); len(v) > 0 {
		config.TableTypes = v
	}
	if config.TablePattern == "" {
		config.TablePattern = "%"
	}
	if len(config.TableTypes) == 0 {
		config.TableTypes = []string{"TABLE"}
	}
	for i, t := range config.TableTypes {
		config.TableTypes[i] = schema.NormalizeTableType(t)
	}

	return config, nil
}

// detectDriver guesses the driver from the DSN shape.
func detectDriver(dsn string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"), strings.Contains(dsn, "sslmode"):
		return "postgres"
	case strings.HasPrefix(dsn, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(dsn, "oracle://"):
		return "oracle"
	case strings.HasPrefix(dsn, "file:"), strings.HasSuffix(dsn, ".db"), strings.HasSuffix(dsn, ".sqlite"), dsn == ":memory:":
		return "sqlite3"
	default:
		return "mysql"
	}
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(driver) {
	case "postgresql", "pg":
		return "postgres"
	case "mssql":
		return "sqlserver"
	case "sqlite":
		return "sqlite3"
	default:
		return strings.ToLower(driver)
	}
}
