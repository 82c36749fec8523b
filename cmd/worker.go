package cmd

import (
	"lending/worker"
	"lending/worker/snapshot"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "lending job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)

		database := provideDatabase()
		defer database.Close()

		banks := provideBankStore(database)
		users := provideUserStore(database)
		transactions := provideTransactionStore(database)
		walletz := provideWalletService(provideDapp())
		ledgerz := provideLedgerService(database, banks, users, transactions, walletz)

		jobs := []worker.IJob{
			snapshot.New(cfg.App.Location, cfg.App.SnapshotSpec, providePropertyStore(database), banks, walletz, ledgerz),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("start job")
			}
		}

		<-signal.WithContext(ctx).Done()

		for _, job := range jobs {
			_ = job.Stop()
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
