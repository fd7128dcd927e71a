package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/emrgen/manuscript/internal/config"
	"github.com/emrgen/manuscript/internal/job"
	"github.com/emrgen/manuscript/internal/store"
)

func purgeCmd() *cobra.Command {
	var retention time.Duration
	var watch bool

	command := &cobra.Command{
		Use:   "purge",
		Short: "Permanently remove documents deleted longer ago than the retention window",
		Run: func(cmd *cobra.Command, args []string) {
			cnf := config.LoadConfig()
			if retention == 0 {
				retention = cnf.PurgeRetention
			}

			docStore := store.NewGormStore(config.GetDb(cnf))
			purger := job.NewDocumentPurger(docStore, retention, cnf.PurgeSchedule)

			if !watch {
				purger.Run()
				return
			}

			executor := job.NewTaskExecutor([]job.CronJob{purger})
			executor.Run()
			defer executor.Stop()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			<-stop
		},
	}

	command.Flags().DurationVarP(&retention, "retention", "r", 0, "retention window, e.g. 720h")
	command.Flags().BoolVarP(&watch, "watch", "w", false, "keep running on the configured cron schedule")

	return command
}
