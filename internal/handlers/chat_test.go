package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billpay-service/internal/mocks"
	"billpay-service/internal/models"
	"billpay-service/internal/payload"
)

func setupChatRouter(handler *ChatHandler, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.GET("/api/chat/:friendId", handler.ListConversation)
	r.POST("/api/chat/:friendId", handler.SendMessage)
	return r
}

func TestSendMessage_EmptyContentReturnsBadRequest(t *testing.T) {
	handler := NewChatHandler(new(mocks.MockChatRepository))
	router := setupChatRouter(handler, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/chat/2", bytes.NewBufferString(`{"content":""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Le message ne peut pas être vide")
}

func TestSendMessage_StoresContentVerbatim(t *testing.T) {
	chat := new(mocks.MockChatRepository)
	handler := NewChatHandler(chat)
	router := setupChatRouter(handler, 1)

	content := `{"type":"INVOICE","invoiceId":7}`
	invoiceID := int64(7)
	chat.On("SendMessage", mock.Anything, int64(1), int64(2), content).
		Return(&models.ChatMessageWithSender{
			ChatMessage: models.ChatMessage{
				ID: 5, SenderID: 1, ReceiverID: 2,
				Content: content, Kind: payload.KindInvoice, InvoiceID: &invoiceID,
			},
			Sender: models.PublicProfile{ID: 1, Username: "moussa", Name: "Moussa"},
		}, nil)

	body, _ := json.Marshal(gin.H{"content": content})
	req := httptest.NewRequest(http.MethodPost, "/api/chat/2", bytes.NewBuffer(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message models.ChatMessageWithSender `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, content, resp.Message.Content)
	require.Equal(t, payload.KindInvoice, resp.Message.Kind)
	require.NotNil(t, resp.Message.InvoiceID)
	require.Equal(t, int64(7), *resp.Message.InvoiceID)
	chat.AssertExpectations(t)
}

func TestListConversation_ReturnsMessagesWithSenders(t *testing.T) {
	chat := new(mocks.MockChatRepository)
	handler := NewChatHandler(chat)
	router := setupChatRouter(handler, 1)

	chat.On("ListConversation", mock.Anything, int64(1), int64(2)).Return([]models.ChatMessageWithSender{
		{
			ChatMessage: models.ChatMessage{ID: 1, SenderID: 1, ReceiverID: 2, Content: "salut", Kind: payload.KindText},
			Sender:      models.PublicProfile{ID: 1, Username: "moussa"},
		},
		{
			ChatMessage: models.ChatMessage{ID: 2, SenderID: 2, ReceiverID: 1, Content: "salut!", Kind: payload.KindText},
			Sender:      models.PublicProfile{ID: 2, Username: "awa"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Messages []models.ChatMessageWithSender `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Messages, 2)
	require.Equal(t, "moussa", resp.Messages[0].Sender.Username)
	require.Equal(t, "awa", resp.Messages[1].Sender.Username)
}

func TestListConversation_InvalidFriendIDReturnsBadRequest(t *testing.T) {
	handler := NewChatHandler(new(mocks.MockChatRepository))
	router := setupChatRouter(handler, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/abc", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
