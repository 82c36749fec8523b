package cmd

import (
	"lending/pkg/id"

	"github.com/fox-one/pkg/qrcode"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:     "deposit",
	Aliases: []string{"dp"},
	Short:   "print a pay link depositing into a bank",
	Run: func(cmd *cobra.Command, args []string) {
		assetID, _ := cmd.Flags().GetString("asset")
		amountStr, _ := cmd.Flags().GetString("amount")

		amount, err := decimal.NewFromString(amountStr)
		if err != nil || !amount.IsPositive() {
			cmd.PrintErrln("invalid amount", amountStr)
			return
		}

		url, err := provideWalletService(provideDapp()).PaySchemaURL(amount, assetID, id.GenTraceID(), "deposit")
		if err != nil {
			cmd.PrintErrln("pay url", err)
			return
		}

		cmd.Println(url)
		qrcode.Fprint(cmd.OutOrStdout(), url)
	},
}

func init() {
	rootCmd.AddCommand(depositCmd)
	depositCmd.Flags().StringP("asset", "a", "", "asset id")
	depositCmd.Flags().StringP("amount", "q", "", "amount")
}
