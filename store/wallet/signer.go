package wallet

import (
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pandodao/fuji-wallet/core"
)

// signer wraps a decrypted key as the one capability allowed to touch it.
type signer struct {
	address common.Address
	key     *ecdsa.PrivateKey
	eip155  types.Signer
}

func newSigner(key *ecdsa.PrivateKey, chainID int64) core.Signer {
	return &signer{
		address: crypto.PubkeyToAddress(key.PublicKey),
		key:     key,
		eip155:  types.LatestSignerForChainID(big.NewInt(chainID)),
	}
}

func (s *signer) Address() common.Address {
	return s.address
}

func (s *signer) SignTx(tx *types.Transaction) (*types.Transaction, error) {
	return types.SignTx(tx, s.eip155, s.key)
}
