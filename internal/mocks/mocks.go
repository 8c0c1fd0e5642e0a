package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"billpay-service/internal/models"
	"billpay-service/internal/repositories"
)

// MockUserRepository mocks UserRepository behavior for handlers and services.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, email, passwordHash, name, username string) (*models.User, error) {
	args := m.Called(ctx, email, passwordHash, name, username)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	var user *models.User
	if val := args.Get(0); val != nil {
		user = val.(*models.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, id int64) (*models.PublicProfile, error) {
	args := m.Called(ctx, id)
	var profile *models.PublicProfile
	if val := args.Get(0); val != nil {
		profile = val.(*models.PublicProfile)
	}
	return profile, args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, callerID int64, query string) ([]models.SearchResult, error) {
	args := m.Called(ctx, callerID, query)
	var results []models.SearchResult
	if val := args.Get(0); val != nil {
		results = val.([]models.SearchResult)
	}
	return results, args.Error(1)
}

// MockFriendRepository mocks FriendRepository behavior for handlers.
type MockFriendRepository struct {
	mock.Mock
}

func (m *MockFriendRepository) CreateRequest(ctx context.Context, senderID, receiverID int64) (*models.FriendRequest, error) {
	args := m.Called(ctx, senderID, receiverID)
	var req *models.FriendRequest
	if val := args.Get(0); val != nil {
		req = val.(*models.FriendRequest)
	}
	return req, args.Error(1)
}

func (m *MockFriendRepository) GetPendingRequests(ctx context.Context, userID int64) ([]models.PendingRequest, error) {
	args := m.Called(ctx, userID)
	var reqs []models.PendingRequest
	if val := args.Get(0); val != nil {
		reqs = val.([]models.PendingRequest)
	}
	return reqs, args.Error(1)
}

func (m *MockFriendRepository) AcceptRequest(ctx context.Context, requestID, userID int64) error {
	args := m.Called(ctx, requestID, userID)
	return args.Error(0)
}

func (m *MockFriendRepository) RejectRequest(ctx context.Context, requestID, userID int64) error {
	args := m.Called(ctx, requestID, userID)
	return args.Error(0)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, userID int64) ([]models.PublicProfile, error) {
	args := m.Called(ctx, userID)
	var friends []models.PublicProfile
	if val := args.Get(0); val != nil {
		friends = val.([]models.PublicProfile)
	}
	return friends, args.Error(1)
}

func (m *MockFriendRepository) HasRequest(ctx context.Context, senderID, receiverID int64) (bool, error) {
	args := m.Called(ctx, senderID, receiverID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

// MockInvoiceRepository mocks InvoiceRepository behavior for handlers.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, ownerID int64, amount float64, invoiceType string, description *string) (*models.Invoice, error) {
	args := m.Called(ctx, ownerID, amount, invoiceType, description)
	var inv *models.Invoice
	if val := args.Get(0); val != nil {
		inv = val.(*models.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) ListByOwner(ctx context.Context, ownerID int64) ([]models.Invoice, error) {
	args := m.Called(ctx, ownerID)
	var invoices []models.Invoice
	if val := args.Get(0); val != nil {
		invoices = val.([]models.Invoice)
	}
	return invoices, args.Error(1)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id int64) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	var inv *models.Invoice
	if val := args.Get(0); val != nil {
		inv = val.(*models.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) GetDetails(ctx context.Context, id int64) (*models.InvoiceDetails, error) {
	args := m.Called(ctx, id)
	var details *models.InvoiceDetails
	if val := args.Get(0); val != nil {
		details = val.(*models.InvoiceDetails)
	}
	return details, args.Error(1)
}

func (m *MockInvoiceRepository) Pay(ctx context.Context, id int64) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	var inv *models.Invoice
	if val := args.Get(0); val != nil {
		inv = val.(*models.Invoice)
	}
	return inv, args.Error(1)
}

func (m *MockInvoiceRepository) Reject(ctx context.Context, id int64) (*models.Invoice, error) {
	args := m.Called(ctx, id)
	var inv *models.Invoice
	if val := args.Get(0); val != nil {
		inv = val.(*models.Invoice)
	}
	return inv, args.Error(1)
}

// MockChatRepository mocks ChatRepository behavior for handlers.
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) ListConversation(ctx context.Context, userID, friendID int64) ([]models.ChatMessageWithSender, error) {
	args := m.Called(ctx, userID, friendID)
	var messages []models.ChatMessageWithSender
	if val := args.Get(0); val != nil {
		messages = val.([]models.ChatMessageWithSender)
	}
	return messages, args.Error(1)
}

func (m *MockChatRepository) SendMessage(ctx context.Context, senderID, receiverID int64, content string) (*models.ChatMessageWithSender, error) {
	args := m.Called(ctx, senderID, receiverID, content)
	var msg *models.ChatMessageWithSender
	if val := args.Get(0); val != nil {
		msg = val.(*models.ChatMessageWithSender)
	}
	return msg, args.Error(1)
}

// Compile-time assertions
var _ repositories.UserRepository = (*MockUserRepository)(nil)
var _ repositories.FriendRepository = (*MockFriendRepository)(nil)
var _ repositories.InvoiceRepository = (*MockInvoiceRepository)(nil)
var _ repositories.ChatRepository = (*MockChatRepository)(nil)
