/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"
)

var walletOpt struct {
	Name string
	Type string
}

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "create a wallet, or list wallets when no name is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		if walletOpt.Name == "" {
			return listWallets(cmd)
		}

		return createWallet(cmd)
	},
}

func init() {
	rootCmd.AddCommand(walletCmd)

	walletCmd.Flags().StringVar(&walletOpt.Name, "name", "", "wallet name")
	walletCmd.Flags().StringVar(&walletOpt.Type, "type", "personal", "wallet type")
}

func createWallet(cmd *cobra.Command) error {
	body, err := callApi(getApiClient().R().
		SetContext(cmd.Context()).
		SetBody(map[string]string{
			"name": walletOpt.Name,
			"type": walletOpt.Type,
		}).
		Post("/wallets"))
	if err != nil {
		return err
	}

	return printJson(cmd, body)
}

func listWallets(cmd *cobra.Command) error {
	body, err := callApi(getApiClient().R().
		SetContext(cmd.Context()).
		Get("/wallets"))
	if err != nil {
		return err
	}

	return printJson(cmd, body)
}
