package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"billpay-service/internal/models"
)

type TransactionRepository interface {
	Create(ctx context.Context, userID int64, amount float64, currencyID int64, invoiceID *int64) (*models.TransactionDetails, error)
	ListByUser(ctx context.Context, userID int64) ([]models.TransactionDetails, error)
}

type transactionRepository struct {
	db *sqlx.DB
}

func NewTransactionRepository(db *sqlx.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(ctx context.Context, userID int64, amount float64, currencyID int64, invoiceID *int64) (*models.TransactionDetails, error) {
	var tr models.Transaction
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO transactions (user_id, amount, currency_id, invoice_id, status)
VALUES ($1, $2, $3, $4, 'PENDING')
RETURNING id, user_id, amount, currency_id, invoice_id, status, created_at
`, userID, amount, currencyID, invoiceID).StructScan(&tr)
	if err != nil {
		return nil, err
	}

	return r.details(ctx, tr)
}

func (r *transactionRepository) ListByUser(ctx context.Context, userID int64) ([]models.TransactionDetails, error) {
	var transactions []models.Transaction
	err := r.db.SelectContext(ctx, &transactions, `
SELECT id, user_id, amount, currency_id, invoice_id, status, created_at
FROM transactions
WHERE user_id=$1
ORDER BY created_at DESC
`, userID)
	if err != nil {
		return nil, err
	}

	details := make([]models.TransactionDetails, 0, len(transactions))
	for _, tr := range transactions {
		d, err := r.details(ctx, tr)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, nil
}

func (r *transactionRepository) details(ctx context.Context, tr models.Transaction) (*models.TransactionDetails, error) {
	d := models.TransactionDetails{Transaction: tr}

	if err := r.db.GetContext(ctx, &d.Currency, `
SELECT id, code, name FROM currencies WHERE id=$1
`, tr.CurrencyID); err != nil {
		return nil, err
	}

	if tr.InvoiceID != nil {
		var inv models.Invoice
		if err := r.db.GetContext(ctx, &inv, `
SELECT id, user_id, amount, type, description, status, created_at
FROM invoices WHERE id=$1
`, *tr.InvoiceID); err != nil {
			return nil, err
		}
		d.Invoice = &inv
	}

	return &d, nil
}
