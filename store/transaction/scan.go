package transaction

import (
	"database/sql"
	"encoding/json"

	"github.com/pandodao/fuji-wallet/core"
)

type scanner interface {
	Scan(dest ...any) error
}

var scanColumns = []string{
	"id",
	"created_at",
	"trace_id",
	"from_owner",
	"to_owner",
	"amount",
	"kind",
	"status",
	"meta",
}

func scanTransaction(r scanner, tx *core.Transaction) error {
	var (
		toOwner sql.NullString
		meta    []byte
	)

	if err := r.Scan(
		&tx.ID,
		&tx.CreatedAt,
		&tx.TraceID,
		&tx.FromOwner,
		&toOwner,
		&tx.Amount,
		&tx.Kind,
		&tx.Status,
		&meta,
	); err != nil {
		return err
	}

	tx.ToOwner = toOwner.String

	return json.Unmarshal(meta, &tx.Meta)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
