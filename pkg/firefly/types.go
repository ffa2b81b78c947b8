package firefly

import (
	"time"

	"github.com/shopspring/decimal"
)

// Amount is a decimal that marshals as a bare JSON number, which is
// what the transactions endpoint expects.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount {
	return Amount{d}
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.String()), nil
}

// Transaction is a single entry in a transaction-store request.
type Transaction struct {
	Type            string    `json:"type"`
	Date            time.Time `json:"date"`
	Amount          Amount    `json:"amount"`
	Description     string    `json:"description"`
	CategoryName    string    `json:"category_name"`
	SourceID        int64     `json:"source_id"`
	DestinationName string    `json:"destination_name"`
	Tags            []string  `json:"tags"`
	Notes           string    `json:"notes,omitempty"`
}

// transactionsRequest is the envelope for POST /api/v1/transactions.
type transactionsRequest struct {
	Transactions []Transaction `json:"transactions"`
}

// categoriesResponse mirrors the JSON:API shape of GET /api/v1/categories.
type categoriesResponse struct {
	Data []struct {
		ID         string `json:"id"`
		Attributes struct {
			Name string `json:"name"`
		} `json:"attributes"`
	} `json:"data"`
}
