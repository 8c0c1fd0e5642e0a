package repositories_test

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billpay-service/internal/mocks"
	"billpay-service/internal/models"
	"billpay-service/internal/repositories"
)

func invoiceRows(id, userID int64, amount float64, invoiceType, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "description", "status", "created_at"}).
		AddRow(id, userID, amount, invoiceType, nil, status, time.Now())
}

func TestPayInvoice_TransitionsPendingToPaid(t *testing.T) {
	db, sqlMock := newMockDB(t)
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, "invoice.paid", mock.Anything).Return(nil)
	repo := repositories.NewInvoiceRepository(db, publisher)

	sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE invoices SET status=$2 WHERE id=$1 AND status='PENDING'")).
		WithArgs(int64(7), "PAID").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectQuery("SELECT id, user_id, amount, type, description, status, created_at").
		WithArgs(int64(7)).
		WillReturnRows(invoiceRows(7, 1, 45000, "ELECTRICITY", "PAID"))

	inv, err := repo.Pay(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusPaid, inv.Status)
	require.Equal(t, 45000.0, inv.Amount)
	require.Equal(t, "ELECTRICITY", inv.Type)
	publisher.AssertExpectations(t)
}

func TestPayInvoice_TerminalStateIsNoOp(t *testing.T) {
	db, sqlMock := newMockDB(t)
	publisher := new(mocks.MockPublisher)
	repo := repositories.NewInvoiceRepository(db, publisher)

	sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE invoices SET status=$2 WHERE id=$1 AND status='PENDING'")).
		WithArgs(int64(7), "PAID").
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectQuery("SELECT id, user_id, amount, type, description, status, created_at").
		WithArgs(int64(7)).
		WillReturnRows(invoiceRows(7, 1, 45000, "ELECTRICITY", "REJECTED"))

	inv, err := repo.Pay(context.Background(), 7)
	require.NoError(t, err)
	// The stored row comes back unchanged; no event is emitted.
	require.Equal(t, models.InvoiceStatusRejected, inv.Status)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestPayInvoice_MissingInvoiceReturnsNoRows(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := repositories.NewInvoiceRepository(db, nil)

	sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE invoices SET status=$2 WHERE id=$1 AND status='PENDING'")).
		WithArgs(int64(99), "PAID").
		WillReturnResult(sqlmock.NewResult(0, 0))
	sqlMock.ExpectQuery("SELECT id, user_id, amount, type, description, status, created_at").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Pay(context.Background(), 99)
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestRejectInvoice_UsesRejectedStatus(t *testing.T) {
	db, sqlMock := newMockDB(t)
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, "invoice.rejected", mock.Anything).Return(nil)
	repo := repositories.NewInvoiceRepository(db, publisher)

	sqlMock.ExpectExec(regexp.QuoteMeta("UPDATE invoices SET status=$2 WHERE id=$1 AND status='PENDING'")).
		WithArgs(int64(7), "REJECTED").
		WillReturnResult(sqlmock.NewResult(0, 1))
	sqlMock.ExpectQuery("SELECT id, user_id, amount, type, description, status, created_at").
		WithArgs(int64(7)).
		WillReturnRows(invoiceRows(7, 1, 45000, "ELECTRICITY", "REJECTED"))

	inv, err := repo.Reject(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusRejected, inv.Status)
	publisher.AssertExpectations(t)
}

func TestCreateInvoice_InsertsPendingRow(t *testing.T) {
	db, sqlMock := newMockDB(t)
	publisher := new(mocks.MockPublisher)
	publisher.On("Publish", mock.Anything, "invoice.created", mock.Anything).Return(nil)
	repo := repositories.NewInvoiceRepository(db, publisher)

	sqlMock.ExpectQuery(regexp.QuoteMeta("INSERT INTO invoices (user_id, amount, type, description, status)")).
		WithArgs(int64(1), 45000.0, "ELECTRICITY", nil).
		WillReturnRows(invoiceRows(7, 1, 45000, "ELECTRICITY", "PENDING"))

	inv, err := repo.Create(context.Background(), 1, 45000, "ELECTRICITY", nil)
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusPending, inv.Status)
	publisher.AssertExpectations(t)
}

func TestListByOwner_OrdersNewestFirst(t *testing.T) {
	db, sqlMock := newMockDB(t)
	repo := repositories.NewInvoiceRepository(db, nil)

	rows := sqlmock.NewRows([]string{"id", "user_id", "amount", "type", "description", "status", "created_at"}).
		AddRow(int64(8), int64(1), 200.0, "WATER", nil, "PENDING", time.Now()).
		AddRow(int64(7), int64(1), 45000.0, "ELECTRICITY", nil, "PAID", time.Now().Add(-time.Hour))
	sqlMock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	invoices, err := repo.ListByOwner(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, invoices, 2)
	require.Equal(t, int64(8), invoices[0].ID)
}
