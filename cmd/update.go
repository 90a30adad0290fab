package cmd

import (
	"errors"
	"fmt"
	"time"

	"repo-sync/internal/changelog"
	"repo-sync/internal/dialect"
	"repo-sync/internal/model"
	"repo-sync/internal/reconcile"
	"repo-sync/internal/schema"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	dryRun     bool
	noProgress bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the repository model from the database structure",
	RunE: func(cmd *cobra.Command, args []string) error {
		modelPath := viper.GetString("model.file")

		m, err := model.Load(modelPath)
		if errors.Is(err, model.ErrModelNotFound) {
			Logger.Warn("model file not found, starting from an empty model", "file", modelPath)
			m = model.New()
		} else if err != nil {
			return err
		}
		m.DatabaseName = ActiveConfig.Name
		m.DatabaseDriver = DriverName

		logPath := viper.GetString("model.log_file")
		if logPath == "" {
			logPath = modelPath + ".update.log"
		}
		changes, err := changelog.Create(logPath)
		if err != nil {
			return err
		}

		d := dialect.GetDialect(DriverName)
		Logger.Debug("using dialect", "driver", DriverName)

		// Progress bar is created on the first table, once the total is known
		var bar *uiprogress.Bar
		progress := func(done, total int) {
			if noProgress {
				return
			}
			if bar == nil {
				uiprogress.Start()
				bar = uiprogress.AddBar(total).AppendCompleted().PrependElapsed()
				bar.PrependFunc(func(b *uiprogress.Bar) string {
					return "Reconciling: "
				})
			}
			_ = bar.Set(done)
		}

		updater := reconcile.NewUpdater(reconcile.Options{
			Provider: schema.NewAnalyzer(DB, d, Logger),
			Logger:   Logger,
			Progress: progress,
		})

		start := time.Now()
		count, err := updater.Update(cmd.Context(), m, changes, ActiveConfig.Filter())
		if bar != nil {
			uiprogress.Stop()
		}
		if err != nil {
			// The in-memory model may be partially updated; it is not saved.
			Logger.Error("update aborted, model not saved", "changelog", logPath)
			return err
		}

		fmt.Printf("\n📊 %d change(s) in %d entities (%s)\n", count, m.Len(), time.Since(start).Round(time.Millisecond))
		fmt.Printf("Change log: %s\n", logPath)

		if dryRun {
			Logger.Info("[SIMULATION] Dry-Run Mode Active: model not saved")
			return nil
		}
		if err := model.Save(modelPath, m); err != nil {
			return err
		}
		Logger.Info("model saved", "file", modelPath)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(updateCmd)

	updateCmd.Flags().String("log-file", "", "Change log file (default is <model>.update.log)")
	updateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Reconcile without saving the model")
	updateCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	bindUpdateFlags()
}

func bindUpdateFlags() {
	viper.BindPFlag("model.log_file", updateCmd.Flags().Lookup("log-file"))
}
