package cmd

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetViper clears global configuration and restores the flag bindings.
func resetViper(t *testing.T) {
	t.Helper()
	reset := func() {
		viper.Reset()
		bindRootFlags()
		bindUpdateFlags()
	}
	reset()
	t.Cleanup(reset)
}

func TestResolveDBConfig_SingleDatabase(t *testing.T) {
	resetViper(t)
	viper.Set("database.dsn", "postgres://app@localhost/shop?sslmode=disable")

	cfg, err := ResolveDBConfig()
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "%", cfg.TablePattern)
	assert.Equal(t, []string{"TABLE"}, cfg.TableTypes)
	assert.Equal(t, "", cfg.Schema)
}

func TestResolveDBConfig_ActiveEntry(t *testing.T) {
	resetViper(t)
	viper.Set("databases", []map[string]any{
		{"name": "dev", "driver": "mysql", "dsn": "root@tcp(localhost)/dev", "active": false},
		{"name": "qa", "driver": "mssql", "dsn": "sqlserver://sa@qa", "active": true, "schema": "sales", "table_types": []string{"BASE TABLE", "view"}},
	})

	cfg, err := ResolveDBConfig()
	require.NoError(t, err)

	assert.Equal(t, "qa", cfg.Name)
	assert.Equal(t, "sqlserver", cfg.Driver)
	assert.Equal(t, "sales", cfg.Schema)
	assert.Equal(t, []string{"TABLE", "VIEW"}, cfg.TableTypes)
	assert.Equal(t, "sales", cfg.Filter().Schema)
}

func TestResolveDBConfig_Overrides(t *testing.T) {
	resetViper(t)
	viper.Set("databases", []map[string]any{
		{"name": "qa", "dsn": "root@tcp(qa)/app", "active": true, "schema": "app"},
	})
	viper.Set("database.dsn", "file:test.db")
	viper.Set("metadata.schema", "other")
	viper.Set("metadata.table_pattern", "CUST%")
	viper.Set("metadata.catalog", "cat")

	cfg, err := ResolveDBConfig()
	require.NoError(t, err)

	assert.Equal(t, "file:test.db", cfg.DSN)
	assert.Equal(t, "sqlite3", cfg.Driver)
	assert.Equal(t, "other", cfg.Schema)
	assert.Equal(t, "CUST%", cfg.TablePattern)

	f := cfg.Filter()
	assert.Equal(t, "cat", f.Catalog)
	assert.Equal(t, "CUST%", f.TablePattern)
	assert.Equal(t, []string{"TABLE"}, f.TableTypes)
}

func TestResolveDBConfig_Errors(t *testing.T) {
	t.Run("missing dsn", func(t *testing.T) {
		resetViper(t)
		_, err := ResolveDBConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.dsn is required")
	})

	t.Run("no active database", func(t *testing.T) {
		resetViper(t)
		viper.Set("databases", []map[string]any{{"name": "a", "dsn": "x"}})
		_, err := ResolveDBConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no active database")
	})

	t.Run("two active databases", func(t *testing.T) {
		resetViper(t)
		viper.Set("databases", []map[string]any{
			{"name": "a", "dsn": "x", "active": true},
			{"name": "b", "dsn": "y", "active": true},
		})
		_, err := GetActiveDBConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "multiple active databases")
	})
}

func TestDetectDriver(t *testing.T) {
	tests := map[string]string{
		"postgres://u@h/db":           "postgres",
		"host=h dbname=d sslmode=off": "postgres",
		"sqlserver://sa@h?database=d": "sqlserver",
		"oracle://u:p@h:1521/svc":     "oracle",
		"file:repo.db?cache=shared":   "sqlite3",
		"/tmp/repo.sqlite":            "sqlite3",
		":memory:":                    "sqlite3",
		"root:pw@tcp(h:3306)/db":      "mysql",
	}
	for dsn, want := range tests {
		assert.Equal(t, want, detectDriver(dsn), dsn)
	}
}

func TestNormalizeDriver(t *testing.T) {
	assert.Equal(t, "postgres", normalizeDriver("PostgreSQL"))
	assert.Equal(t, "postgres", normalizeDriver("pg"))
	assert.Equal(t, "sqlserver", normalizeDriver("mssql"))
	assert.Equal(t, "sqlite3", normalizeDriver("sqlite"))
	assert.Equal(t, "oracle", normalizeDriver("ORACLE"))
}
