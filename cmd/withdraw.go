package cmd

import (
	"encoding/json"

	"lending/core"
	"lending/pkg/id"
	"lending/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var withdrawCmd = &cobra.Command{
	Use:     "withdraw",
	Aliases: []string{"ww"},
	Short:   "withdraw from a bank on behalf of a user",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		traceID, _ := cmd.Flags().GetString("trace")
		amountStr, _ := cmd.Flags().GetString("amount")

		amount, err := decimal.NewFromString(amountStr)
		if err != nil || !amount.IsPositive() {
			cmd.PrintErrln("invalid amount", amountStr)
			return
		}

		if traceID == "" {
			traceID = id.GenTraceID()
		}

		database := provideDatabase()
		defer database.Close()

		banks := provideBankStore(database)
		bank, err := banks.Find(ctx, assetID)
		if err != nil {
			cmd.PrintErrln("find bank", assetID, err)
			return
		}

		units, ok := number.ToUnits(amount, bank.Decimals)
		if !ok {
			cmd.PrintErrln(core.ErrArithmeticOverflow)
			return
		}

		ledgerz := provideLedgerService(database, banks, provideUserStore(database), provideTransactionStore(database), provideWalletService(provideDapp()))
		transaction, err := ledgerz.Withdraw(ctx, &core.Withdraw{
			TraceID: traceID,
			UserID:  userID,
			AssetID: assetID,
			Amount:  units,
		})
		if err != nil {
			cmd.PrintErrln("withdraw", traceID, err)
			return
		}

		data, _ := json.MarshalIndent(transaction, "", "    ")
		cmd.Println(string(data))
	},
}

func init() {
	rootCmd.AddCommand(withdrawCmd)
	withdrawCmd.Flags().StringP("user", "u", "", "user id")
	withdrawCmd.Flags().StringP("asset", "a", "", "asset id")
	withdrawCmd.Flags().StringP("amount", "q", "", "amount")
	withdrawCmd.Flags().String("trace", "", "trace id, retry with the same trace is safe")
}
