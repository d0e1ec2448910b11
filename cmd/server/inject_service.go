package main

import (
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/google/wire"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/pandodao/fuji-wallet/service/faucet"
	"github.com/pandodao/fuji-wallet/service/fee"
	"github.com/pandodao/fuji-wallet/service/ledger"
	"github.com/pandodao/fuji-wallet/service/price"
	"github.com/pandodao/fuji-wallet/service/transfer"
	"github.com/pandodao/fuji-wallet/service/wallet"
	"github.com/spf13/viper"
)

var serviceSet = wire.NewSet(
	provideEthClient,
	provideLedgerConfig,
	ledger.New,
	fee.New,
	provideQuoteSource,
	price.New,
	wire.Bind(new(core.PriceService), new(*price.Cache)),
	provideFaucetConfig,
	faucet.New,
	provideWalletConfig,
	wallet.New,
	provideTransferConfig,
	transfer.New,
)

func provideEthClient(v *viper.Viper) (*ethclient.Client, func(), error) {
	client, err := ethclient.Dial(v.GetString("ledger.endpoint"))
	if err != nil {
		return nil, nil, err
	}

	return client, client.Close, nil
}

func provideLedgerConfig(v *viper.Viper) ledger.Config {
	return ledger.Config{
		ChainID:      v.GetInt64("ledger.chain_id"),
		PollInterval: v.GetDuration("ledger.poll_interval"),
	}
}

func provideQuoteSource(v *viper.Viper) core.QuoteSource {
	v.SetDefault("price.coin_id", "avalanche-2")

	return price.CoinGecko(v.GetString("price.coin_id"))
}

func provideFaucetConfig(v *viper.Viper) faucet.Config {
	v.SetDefault("faucet.chain", "C")

	return faucet.Config{
		Endpoint: v.GetString("faucet.endpoint"),
		Chain:    v.GetString("faucet.chain"),
	}
}

func provideWalletConfig(v *viper.Viper) wallet.Config {
	v.SetDefault("wallet.currency", "AVAX")

	return wallet.Config{
		Currency: v.GetString("wallet.currency"),
	}
}

func provideTransferConfig(v *viper.Viper) transfer.Config {
	return transfer.Config{
		LevyAddress:       v.GetString("transfer.levy_address"),
		Confirmations:     v.GetUint64("transfer.confirmations"),
		LevyConfirmations: v.GetUint64("transfer.levy_confirmations"),
		ConfirmTimeout:    v.GetDuration("transfer.confirm_timeout"),
	}
}
