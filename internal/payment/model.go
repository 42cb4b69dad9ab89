package payment

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status is the outcome of a payment attempt.
type Status string

const (
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// Payment records a payment made against a booking.
type Payment struct {
	ID            string
	BookingID     string
	Amount        decimal.Decimal
	Method        string
	Status        Status
	TransactionID string
	CreatedAt     time.Time
}

const txnAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewTransactionID generates a synthetic transaction id for payments
// settled without an external gateway reference.
func NewTransactionID() string {
	ts := strings.ToUpper(strconv.FormatInt(time.Now().UnixMilli(), 36))

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = txnAlphabet[rand.IntN(len(txnAlphabet))]
	}

	return "TXN-" + ts + "-" + string(suffix)
}
