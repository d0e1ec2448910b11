package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pandodao/fuji-wallet/core"
)

func New(
	walletz core.WalletService,
	transferz core.TransferService,
	transactions core.TransactionStore,
	logger *slog.Logger,
) *Server {
	return &Server{
		walletz:      walletz,
		transferz:    transferz,
		transactions: transactions,
		logger:       logger.With("server", "api"),
	}
}

type Server struct {
	walletz      core.WalletService
	transferz    core.TransferService
	transactions core.TransactionStore
	logger       *slog.Logger
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requireOwner)

	r.Route("/wallets", func(r chi.Router) {
		r.Post("/", s.createWallet)
		r.Get("/", s.listWallets)
	})

	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", s.listTransactions)
		r.Post("/send", s.send)
		r.Post("/levy", s.payLevy)
	})

	return r
}
