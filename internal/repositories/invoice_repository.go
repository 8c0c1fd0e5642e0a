package repositories

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"

	"billpay-service/internal/models"
	"billpay-service/internal/observability"
	"billpay-service/internal/rabbitmq"
)

type InvoiceRepository interface {
	Create(ctx context.Context, ownerID int64, amount float64, invoiceType string, description *string) (*models.Invoice, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.Invoice, error)
	GetByID(ctx context.Context, id int64) (*models.Invoice, error)
	GetDetails(ctx context.Context, id int64) (*models.InvoiceDetails, error)
	Pay(ctx context.Context, id int64) (*models.Invoice, error)
	Reject(ctx context.Context, id int64) (*models.Invoice, error)
}

type invoiceRepository struct {
	db        *sqlx.DB
	publisher rabbitmq.Publisher
}

func NewInvoiceRepository(db *sqlx.DB, publisher rabbitmq.Publisher) InvoiceRepository {
	return &invoiceRepository{db: db, publisher: publisher}
}

func (r *invoiceRepository) Create(ctx context.Context, ownerID int64, amount float64, invoiceType string, description *string) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.QueryRowxContext(ctx, `
INSERT INTO invoices (user_id, amount, type, description, status)
VALUES ($1, $2, $3, $4, 'PENDING')
RETURNING id, user_id, amount, type, description, status, created_at
`, ownerID, amount, invoiceType, description).StructScan(&inv)
	if err != nil {
		return nil, err
	}

	r.logPublish(ctx, "invoice.created", map[string]any{
		"invoice_id": inv.ID,
		"user_id":    inv.UserID,
		"amount":     inv.Amount,
		"type":       inv.Type,
	})

	return &inv, nil
}

func (r *invoiceRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Invoice, error) {
	invoices := []models.Invoice{}
	err := r.db.SelectContext(ctx, &invoices, `
SELECT id, user_id, amount, type, description, status, created_at
FROM invoices
WHERE user_id=$1
ORDER BY created_at DESC
`, ownerID)
	return invoices, err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	var inv models.Invoice
	err := r.db.GetContext(ctx, &inv, `
SELECT id, user_id, amount, type, description, status, created_at
FROM invoices WHERE id=$1
`, id)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *invoiceRepository) GetDetails(ctx context.Context, id int64) (*models.InvoiceDetails, error) {
	row := r.db.QueryRowxContext(ctx, `
SELECT i.id, i.user_id, i.amount, i.type, i.description, i.status, i.created_at,
	u.id, u.username, u.name
FROM invoices i
JOIN users u ON u.id = i.user_id
WHERE i.id=$1
`, id)

	var d models.InvoiceDetails
	if err := row.Scan(
		&d.ID, &d.UserID, &d.Amount, &d.Type, &d.Description, &d.Status, &d.CreatedAt,
		&d.User.ID, &d.User.Username, &d.User.Name,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Pay transitions PENDING→PAID. The transition is guarded in SQL: an
// invoice already in a terminal state is returned unchanged.
func (r *invoiceRepository) Pay(ctx context.Context, id int64) (*models.Invoice, error) {
	return r.transition(ctx, id, models.InvoiceStatusPaid, "invoice.paid")
}

// Reject transitions PENDING→REJECTED, the symmetric twin of Pay.
func (r *invoiceRepository) Reject(ctx context.Context, id int64) (*models.Invoice, error) {
	return r.transition(ctx, id, models.InvoiceStatusRejected, "invoice.rejected")
}

func (r *invoiceRepository) transition(ctx context.Context, id int64, status, eventType string) (*models.Invoice, error) {
	res, err := r.db.ExecContext(ctx, `
UPDATE invoices SET status=$2 WHERE id=$1 AND status='PENDING'
`, id, status)
	if err != nil {
		return nil, err
	}

	// Zero rows means either the invoice is missing or it is already
	// terminal; GetByID distinguishes the two.
	count, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	inv, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if count > 0 {
		r.logPublish(ctx, eventType, map[string]any{
			"invoice_id": inv.ID,
			"user_id":    inv.UserID,
			"amount":     inv.Amount,
			"status":     inv.Status,
		})
	}

	return inv, nil
}

func (r *invoiceRepository) logPublish(ctx context.Context, eventType string, payload any) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, eventType, payload); err != nil {
		observability.IncAMQPPublishError()
		log.Printf("warning: failed to publish %s: %v", eventType, err)
	}
}
