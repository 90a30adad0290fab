package cmd

import (
	"fmt"

	"repo-sync/internal/dialect"
	"repo-sync/internal/schema"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the database tables in dependency order",
	RunE: func(cmd *cobra.Command, args []string) error {
		d := dialect.GetDialect(DriverName)

		analyzer := schema.NewAnalyzer(DB, d, Logger)
		tables, err := analyzer.FetchTables(cmd.Context(), ActiveConfig.Filter())
		if err != nil {
			return err
		}

		fmt.Printf("🔍 %d table(s) in %s (%s):\n", len(tables), d.GetSchemaName(SchemaName), DriverName)
		for i, t := range schema.SortTablesByFKCount(tables) {
			fmt.Printf("[%02d] %-30s %-6s columns=%-3d fks=%-3d deps=%v\n",
				i+1, t.Name, t.Type, len(t.Columns), len(t.ForeignKeys), t.Dependencies)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}
