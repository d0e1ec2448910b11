/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

var levyAmount string

var levyCmd = &cobra.Command{
	Use:   "levy",
	Short: "pay a levy from the daily wallet",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := callApi(getApiClient().R().
			SetContext(cmd.Context()).
			SetBody(map[string]any{"amount": levyAmount}).
			Post("/transactions/levy"))
		if err != nil {
			return err
		}

		return printJson(cmd, body)
	},
}

func init() {
	rootCmd.AddCommand(levyCmd)

	levyCmd.Flags().StringVar(&levyAmount, "amount", "0", "amount")
}
