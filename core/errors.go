package core

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrNoFeeData indicates the ledger returned no EIP-1559 fee quote.
	ErrNoFeeData = errors.New("ledger: fee data unavailable")

	// ErrTransactionTimeout means no confirmation was observed within the
	// deadline. The transaction may still land; it is never a failure.
	ErrTransactionTimeout = errors.New("transaction confirmation timeout")

	// ErrTransactionFailed means the ledger included the transaction with
	// a non-success receipt status.
	ErrTransactionFailed = errors.New("transaction failed on ledger")

	// ErrGasFunds is the terminal fee-estimation error when the underlying
	// failure indicates the sender cannot cover network fees.
	ErrGasFunds = errors.New("insufficient funds for network fees")
)

// NetworkError marks a transient ledger or collaborator failure. Safe to
// retry.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("network: %v", e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// InvalidRequestError marks a permanent failure caused by the request
// itself. Never retried.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string { return fmt.Sprintf("invalid request: %v", e.Err) }
func (e *InvalidRequestError) Unwrap() error { return e.Err }

func IsInvalidRequest(err error) bool {
	var ie *InvalidRequestError
	return errors.As(err, &ie)
}

// InsufficientFundsError carries the full cost breakdown of a rejected
// send, all amounts in the ledger's native unit.
type InsufficientFundsError struct {
	Amount         decimal.Decimal `json:"amount"`
	EstimatedGas   decimal.Decimal `json:"estimated_gas_fees"`
	TotalRequired  decimal.Decimal `json:"total_required"`
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("insufficient funds: need %s, have %s", e.TotalRequired, e.CurrentBalance)
}
