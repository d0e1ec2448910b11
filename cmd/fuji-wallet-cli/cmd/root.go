/*
Copyright © 2024 pando
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fuji-wallet-cli",
	Short: "api cmd for fuji-wallet service",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("endpoint", "l", "http://localhost:8080", "api endpoint")
	rootCmd.PersistentFlags().StringP("user", "u", "", "user id sent as X-User-Id")
	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("user", rootCmd.PersistentFlags().Lookup("user"))
}

func getApiClient() *resty.Client {
	return resty.New().
		SetBaseURL(viper.GetString("endpoint") + "/api").
		SetHeader("X-User-Id", viper.GetString("user"))
}

func callApi(r *resty.Response, err error) (json.RawMessage, error) {
	if err != nil {
		return nil, err
	}

	if r.IsError() {
		return nil, fmt.Errorf("%s: %s", r.Status(), r.Body())
	}

	return r.Body(), nil
}

func printJson(cmd *cobra.Command, body json.RawMessage) error {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return err
	}

	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	cmd.Println(string(b))
	return nil
}
