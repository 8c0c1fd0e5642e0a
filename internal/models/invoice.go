package models

import "time"

const (
	InvoiceStatusPending  = "PENDING"
	InvoiceStatusPaid     = "PAID"
	InvoiceStatusRejected = "REJECTED"
)

// InvoiceTypes are the accepted bill categories.
var InvoiceTypes = []string{"ELECTRICITY", "WATER", "SCHOOL", "MEDICAL", "OTHER"}

func ValidInvoiceType(t string) bool {
	for _, v := range InvoiceTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Invoice struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Amount      float64   `db:"amount" json:"amount"`
	Type        string    `db:"type" json:"type"`
	Description *string   `db:"description" json:"description,omitempty"`
	Status      string    `db:"status" json:"status"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// InvoiceDetails is an invoice joined with its creator's profile.
type InvoiceDetails struct {
	Invoice
	User PublicProfile `json:"user"`
}
