package wallet

import (
	"context"
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/asaskevich/govalidator"
	"github.com/ethereum/go-ethereum/crypto"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/shopspring/decimal"
	"github.com/tsenart/nap"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Config struct {
	// SecretKey encrypts wallet signing keys at rest, 32 bytes hex.
	SecretKey string `valid:"hexadecimal,required"`
	ChainID   int64  `valid:"required"`
}

func New(db *nap.DB, cfg Config) core.WalletStore {
	if _, err := govalidator.ValidateStruct(cfg); err != nil {
		panic(err)
	}

	key, err := hex.DecodeString(cfg.SecretKey)
	if err != nil || len(key) != 32 {
		panic("wallet store: secret key must be 32 bytes hex")
	}

	signers, err := lru.New[string, core.Signer](256)
	if err != nil {
		panic(err)
	}

	return &walletStore{
		db:      db,
		key:     key,
		chainID: cfg.ChainID,
		signers: signers,
	}
}

type walletStore struct {
	db      *nap.DB
	key     []byte
	chainID int64
	signers *lru.Cache[string, core.Signer]
}

var columns = []string{"id", "created_at", "owner_id", "name", "kind", "address", "balance", "currency"}

func (s *walletStore) Create(ctx context.Context, wallet *core.Wallet, secret *ecdsa.PrivateKey) error {
	sealed, err := encrypt(s.key, hex.EncodeToString(crypto.FromECDSA(secret)))
	if err != nil {
		return fmt.Errorf("seal secret: %w", err)
	}

	b := psql.Insert("wallets").
		Columns("owner_id", "name", "kind", "address", "secret_enc", "balance", "currency").
		Values(wallet.OwnerID, wallet.Name, wallet.Kind, wallet.Address, sealed, wallet.Balance, wallet.Currency).
		Suffix("RETURNING id, created_at")

	return b.RunWith(s.db).QueryRowContext(ctx).Scan(&wallet.ID, &wallet.CreatedAt)
}

func (s *walletStore) Find(ctx context.Context, id uint64) (*core.Wallet, error) {
	return s.findOne(ctx, sq.Eq{"id": id})
}

func (s *walletStore) FindOwner(ctx context.Context, ownerID string, id uint64) (*core.Wallet, error) {
	return s.findOne(ctx, sq.Eq{"owner_id": ownerID, "id": id})
}

func (s *walletStore) FindOwnerKind(ctx context.Context, ownerID string, kind core.WalletKind) (*core.Wallet, error) {
	return s.findOne(ctx, sq.Eq{"owner_id": ownerID, "kind": kind})
}

func (s *walletStore) ListOwner(ctx context.Context, ownerID string) ([]*core.Wallet, error) {
	return s.list(ctx, sq.Eq{"owner_id": ownerID})
}

func (s *walletStore) List(ctx context.Context) ([]*core.Wallet, error) {
	return s.list(ctx, nil)
}

func (s *walletStore) UpdateBalance(ctx context.Context, id uint64, balance decimal.Decimal) error {
	b := psql.Update("wallets").
		Set("balance", balance).
		Where(sq.Eq{"id": id})

	_, err := b.RunWith(s.db).ExecContext(ctx)
	return err
}

func (s *walletStore) SignerOf(ctx context.Context, address string) (core.Signer, error) {
	if signer, ok := s.signers.Get(address); ok {
		return signer, nil
	}

	b := psql.Select("secret_enc").From("wallets").Where(sq.Eq{"address": address})

	var sealed string
	if err := b.RunWith(s.db).QueryRowContext(ctx).Scan(&sealed); err != nil {
		return nil, err
	}

	plain, err := decrypt(s.key, sealed)
	if err != nil {
		return nil, fmt.Errorf("unseal secret: %w", err)
	}

	raw, err := hex.DecodeString(plain)
	if err != nil {
		return nil, fmt.Errorf("decode secret: %w", err)
	}

	key, err := crypto.ToECDSA(raw)
	if err != nil {
		return nil, fmt.Errorf("parse secret: %w", err)
	}

	signer := newSigner(key, s.chainID)
	s.signers.Add(address, signer)
	return signer, nil
}

func (s *walletStore) findOne(ctx context.Context, pred any) (*core.Wallet, error) {
	b := psql.Select(columns...).From("wallets").Where(pred).Limit(1)

	var wallet core.Wallet
	if err := scanWallet(b.RunWith(s.db).QueryRowContext(ctx), &wallet); err != nil {
		return nil, err
	}

	return &wallet, nil
}

func (s *walletStore) list(ctx context.Context, pred any) ([]*core.Wallet, error) {
	b := psql.Select(columns...).From("wallets").OrderBy("id")
	if pred != nil {
		b = b.Where(pred)
	}

	rows, err := b.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var wallets []*core.Wallet
	for rows.Next() {
		var wallet core.Wallet
		if err := scanWallet(rows, &wallet); err != nil {
			return nil, err
		}

		wallets = append(wallets, &wallet)
	}

	return wallets, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanWallet(r scanner, wallet *core.Wallet) error {
	return r.Scan(
		&wallet.ID,
		&wallet.CreatedAt,
		&wallet.OwnerID,
		&wallet.Name,
		&wallet.Kind,
		&wallet.Address,
		&wallet.Balance,
		&wallet.Currency,
	)
}
