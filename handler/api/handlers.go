package api

import (
	"encoding/json"
	"net/http"

	"github.com/pandodao/fuji-wallet/core"
	"github.com/shopspring/decimal"
)

type createWalletRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

func (s *Server) createWallet(w http.ResponseWriter, r *http.Request) {
	var req createWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, &core.InvalidRequestError{Err: err})
		return
	}

	wallet, err := s.walletz.Create(r.Context(), core.CreateWalletInput{
		OwnerID: ownerID(r),
		Name:    req.Name,
		Kind:    core.WalletKind(req.Type),
	})
	if err != nil {
		s.logger.Error("create wallet", "err", err)
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"address": wallet.Address,
		"balance": wallet.Balance,
	})
}

func (s *Server) listWallets(w http.ResponseWriter, r *http.Request) {
	views, err := s.walletz.List(r.Context(), ownerID(r))
	if err != nil {
		s.logger.Error("list wallets", "err", err)
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, views)
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.ListOwner(r.Context(), ownerID(r))
	if err != nil {
		s.logger.Error("list transactions", "err", err)
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, txs)
}

type sendRequest struct {
	TraceID    string          `json:"trace_id"`
	WalletID   uint64          `json:"wallet_id"`
	Recipient  string          `json:"recipient"`
	UseAddress bool            `json:"use_address"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note"`
}

func (s *Server) send(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, &core.InvalidRequestError{Err: err})
		return
	}

	result, err := s.transferz.Send(r.Context(), &core.SendInput{
		TraceID:    req.TraceID,
		OwnerID:    ownerID(r),
		WalletID:   req.WalletID,
		Recipient:  req.Recipient,
		UseAddress: req.UseAddress,
		Amount:     req.Amount,
		Note:       req.Note,
	})
	if err != nil {
		s.logger.Error("send", "err", err)
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"tx_hash":      result.TxHash,
		"block_number": result.BlockNumber,
		"gas_used":     result.GasUsed,
	})
}

type levyRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func (s *Server) payLevy(w http.ResponseWriter, r *http.Request) {
	var req levyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		renderError(w, &core.InvalidRequestError{Err: err})
		return
	}

	result, err := s.transferz.PayLevy(r.Context(), ownerID(r), req.Amount)
	if err != nil {
		s.logger.Error("pay levy", "err", err)
		renderError(w, err)
		return
	}

	renderJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tx_hash": result.TxHash,
	})
}
