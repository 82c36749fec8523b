package cmd

import (
	"errors"
	"strings"

	"lending/core"
	"lending/internal/lending"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cobra"
	"github.com/yiplee/structs"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "manage the usdc & sol banks",
}

var bankInitCmd = &cobra.Command{
	Use:   "init",
	Short: "create the configured banks",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		banks := provideBankStore(database)

		for _, c := range cfg.Banks {
			asset, err := core.ParseAsset(c.Symbol)
			if err != nil {
				cmd.PrintErrln("unsupported bank", c.Symbol)
				return
			}

			if c.InterestRate.IsNegative() {
				cmd.PrintErrln(c.Symbol, core.ErrInvalidInterestRate)
				return
			}

			bank := &core.Bank{
				Asset:        asset,
				Symbol:       strings.ToUpper(c.Symbol),
				AssetID:      c.AssetID,
				Decimals:     c.Decimals,
				InterestRate: lending.RatePerSecond(c.InterestRate),
			}

			if err := database.Tx(func(tx *db.DB) error {
				return banks.Save(ctx, tx, bank)
			}); err != nil {
				cmd.PrintErrln("save bank", c.Symbol, err)
				return
			}

			cmd.Println("bank", bank.Symbol, bank.AssetID, "ready")
		}
	},
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "print the banks",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		banks, err := provideBankStore(database).All(ctx)
		if err != nil {
			cmd.PrintErrln("list banks", err)
			return
		}

		if len(banks) == 0 {
			cmd.PrintErrln(errors.New("no bank, run bank init first"))
			return
		}

		for _, bank := range banks {
			cmd.Println(structs.Map(bank))
		}
	},
}

func init() {
	bankCmd.AddCommand(bankInitCmd)
	bankCmd.AddCommand(bankListCmd)
	rootCmd.AddCommand(bankCmd)
}
