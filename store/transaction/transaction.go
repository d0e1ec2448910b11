package transaction

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/pandodao/fuji-wallet/core"
	"github.com/pandodao/generic"
	"github.com/tsenart/nap"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func New(db *nap.DB) core.TransactionStore {
	return &store{db: db}
}

type store struct {
	db *nap.DB
}

func (s *store) Create(ctx context.Context, tx *core.Transaction) error {
	b := psql.Insert("transactions").
		Columns("trace_id", "from_owner", "to_owner", "amount", "kind", "status", "meta").
		Values(tx.TraceID, tx.FromOwner, nullable(tx.ToOwner), tx.Amount, tx.Kind, tx.Status, generic.Must(json.Marshal(tx.Meta))).
		Suffix("RETURNING id, created_at")

	return b.RunWith(s.db).QueryRowContext(ctx).Scan(&tx.ID, &tx.CreatedAt)
}

// Finalize moves a pending row to its terminal status exactly once.
func (s *store) Finalize(ctx context.Context, id uint64, status core.TransactionStatus, meta core.TransactionMeta) error {
	b := psql.Update("transactions").
		Set("status", status).
		Set("meta", generic.Must(json.Marshal(meta))).
		Where(sq.Eq{"id": id, "status": core.TransactionStatusPending})

	result, err := b.RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return fmt.Errorf("transaction %d already finalized", id)
	}

	return nil
}

func (s *store) FindTrace(ctx context.Context, traceID string) (*core.Transaction, error) {
	b := psql.Select(scanColumns...).
		From("transactions").
		Where(sq.Eq{"trace_id": traceID})

	var tx core.Transaction
	if err := scanTransaction(b.RunWith(s.db).QueryRowContext(ctx), &tx); err != nil {
		return nil, err
	}

	return &tx, nil
}

func (s *store) ListOwner(ctx context.Context, ownerID string) ([]*core.Transaction, error) {
	b := psql.Select(scanColumns...).
		From("transactions").
		Where(sq.Or{sq.Eq{"from_owner": ownerID}, sq.Eq{"to_owner": ownerID}}).
		OrderBy("id DESC")

	rows, err := b.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var txs []*core.Transaction
	for rows.Next() {
		var tx core.Transaction
		if err := scanTransaction(rows, &tx); err != nil {
			return nil, err
		}

		txs = append(txs, &tx)
	}

	return txs, rows.Err()
}
