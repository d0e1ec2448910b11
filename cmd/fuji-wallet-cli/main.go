/*
Copyright © 2024 pando
*/
package main

import "github.com/pandodao/fuji-wallet/cmd/fuji-wallet-cli/cmd"

func main() {
	cmd.Execute()
}
