package models

import "time"

const TransactionStatusPending = "PENDING"

type Currency struct {
	ID   int64  `db:"id" json:"id"`
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

type Transaction struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"userId"`
	Amount     float64   `db:"amount" json:"amount"`
	CurrencyID int64     `db:"currency_id" json:"currencyId"`
	InvoiceID  *int64    `db:"invoice_id" json:"invoiceId,omitempty"`
	Status     string    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// TransactionDetails is a transaction joined with its currency and,
// when present, the referenced invoice.
type TransactionDetails struct {
	Transaction
	Currency Currency `json:"currency"`
	Invoice  *Invoice `json:"invoice,omitempty"`
}
