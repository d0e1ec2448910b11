package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pandodao/fuji-wallet/core"
	"github.com/pandodao/fuji-wallet/store"
)

type ctxKey int

const ownerKey ctxKey = iota

// requireOwner trusts the identity header set by the upstream auth layer.
func requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get("X-User-Id")
		if owner == "" {
			http.Error(w, "not authenticated", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey, owner)))
	})
}

func ownerID(r *http.Request) string {
	owner, _ := r.Context().Value(ownerKey).(string)
	return owner
}

func renderJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func renderError(w http.ResponseWriter, err error) {
	var insufficient *core.InsufficientFundsError
	if errors.As(err, &insufficient) {
		renderJSON(w, http.StatusBadRequest, map[string]any{
			"error":   "INSUFFICIENT_FUNDS",
			"message": "insufficient funds for transaction",
			"details": insufficient,
		})
		return
	}

	switch {
	case core.IsInvalidRequest(err) || errors.Is(err, core.ErrGasFunds):
		renderJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
	case errors.Is(err, core.ErrNotFound) || store.IsErrNotFound(err):
		renderJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
	case errors.Is(err, core.ErrTransactionTimeout):
		renderJSON(w, http.StatusRequestTimeout, map[string]any{"error": "transaction confirmation timeout"})
	default:
		renderJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
	}
}
