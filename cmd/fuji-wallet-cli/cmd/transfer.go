/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var transferOpt struct {
	TraceID    string
	WalletID   uint64
	Recipient  string
	UseAddress bool
	Amount     string
	Note       string
}

// transferCmd represents the transfer command
var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "send funds, or list transactions when no recipient is given",
	RunE: func(cmd *cobra.Command, args []string) error {
		if transferOpt.Recipient == "" {
			return listTransactions(cmd)
		}

		if transferOpt.TraceID == "" {
			transferOpt.TraceID = uuid.NewString()
		}

		return createTransfer(cmd)
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)

	transferCmd.Flags().StringVar(&transferOpt.TraceID, "trace", "", "trace id (optional)")
	transferCmd.Flags().Uint64Var(&transferOpt.WalletID, "wallet", 0, "source wallet id")
	transferCmd.Flags().StringVar(&transferOpt.Recipient, "to", "", "recipient handle or address")
	transferCmd.Flags().BoolVar(&transferOpt.UseAddress, "address", false, "treat recipient as a raw address")
	transferCmd.Flags().StringVar(&transferOpt.Amount, "amount", "0", "amount")
	transferCmd.Flags().StringVar(&transferOpt.Note, "note", "", "note (optional)")
}

func createTransfer(cmd *cobra.Command) error {
	body, err := callApi(getApiClient().R().
		SetContext(cmd.Context()).
		SetBody(map[string]any{
			"trace_id":    transferOpt.TraceID,
			"wallet_id":   transferOpt.WalletID,
			"recipient":   transferOpt.Recipient,
			"use_address": transferOpt.UseAddress,
			"amount":      transferOpt.Amount,
			"note":        transferOpt.Note,
		}).
		Post("/transactions/send"))
	if err != nil {
		return err
	}

	return printJson(cmd, body)
}

func listTransactions(cmd *cobra.Command) error {
	body, err := callApi(getApiClient().R().
		SetContext(cmd.Context()).
		Get("/transactions"))
	if err != nil {
		return err
	}

	return printJson(cmd, body)
}
