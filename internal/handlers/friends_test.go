package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"billpay-service/internal/mocks"
	"billpay-service/internal/models"
	"billpay-service/internal/repositories"
)

func setupFriendsRouter(handler *FriendHandler, userID int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	})
	r.POST("/api/friends/request", handler.SendRequest)
	r.GET("/api/friends/request/pending", handler.ListPending)
	r.POST("/api/friends/respond", handler.Respond)
	r.GET("/api/friends", handler.ListFriends)
	return r
}

func TestSendRequest_EmptyBodyReturnsBadRequest(t *testing.T) {
	handler := NewFriendHandler(new(mocks.MockFriendRepository), new(mocks.MockUserRepository), nil)
	router := setupFriendsRouter(handler, 1)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/request", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendRequest_CreatesPendingRequest(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	users := new(mocks.MockUserRepository)
	handler := NewFriendHandler(friends, users, nil)
	router := setupFriendsRouter(handler, 1)

	users.On("GetProfile", mock.Anything, int64(2)).
		Return(&models.PublicProfile{ID: 2, Username: "awa", Name: "Awa"}, nil)
	friends.On("CreateRequest", mock.Anything, int64(1), int64(2)).
		Return(&models.FriendRequest{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.RequestStatusPending, CreatedAt: time.Now()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/request", bytes.NewBufferString(`{"receiverId":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		FriendRequest models.FriendRequest `json:"friendRequest"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, models.RequestStatusPending, resp.FriendRequest.Status)
	require.Equal(t, int64(1), resp.FriendRequest.SenderID)
	friends.AssertExpectations(t)
}

func TestSendRequest_DuplicateReturnsBadRequest(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	users := new(mocks.MockUserRepository)
	handler := NewFriendHandler(friends, users, nil)
	router := setupFriendsRouter(handler, 1)

	users.On("GetProfile", mock.Anything, int64(2)).
		Return(&models.PublicProfile{ID: 2}, nil)
	friends.On("CreateRequest", mock.Anything, int64(1), int64(2)).
		Return(nil, repositories.ErrDuplicateRequest)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/request", bytes.NewBufferString(`{"receiverId":2}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "Une demande d'ami existe déjà")
}

func TestRespond_AcceptReturnsSuccess(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	handler := NewFriendHandler(friends, new(mocks.MockUserRepository), nil)
	router := setupFriendsRouter(handler, 2)

	friends.On("AcceptRequest", mock.Anything, int64(10), int64(2)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/respond", bytes.NewBufferString(`{"requestId":10,"accept":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"success":true`)
	friends.AssertExpectations(t)
}

func TestRespond_RejectUsesRejectPath(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	handler := NewFriendHandler(friends, new(mocks.MockUserRepository), nil)
	router := setupFriendsRouter(handler, 2)

	friends.On("RejectRequest", mock.Anything, int64(10), int64(2)).Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/respond", bytes.NewBufferString(`{"requestId":10,"accept":false}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	friends.AssertExpectations(t)
	friends.AssertNotCalled(t, "AcceptRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestRespond_NotAddressedToCallerReturnsNotFound(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	handler := NewFriendHandler(friends, new(mocks.MockUserRepository), nil)
	router := setupFriendsRouter(handler, 3)

	friends.On("AcceptRequest", mock.Anything, int64(10), int64(3)).Return(repositories.ErrRequestForbidden)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/respond", bytes.NewBufferString(`{"requestId":10,"accept":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "Demande d'ami non trouvée")
}

func TestRespond_MissingRequestReturnsNotFound(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	handler := NewFriendHandler(friends, new(mocks.MockUserRepository), nil)
	router := setupFriendsRouter(handler, 3)

	friends.On("AcceptRequest", mock.Anything, int64(99), int64(3)).Return(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodPost, "/api/friends/respond", bytes.NewBufferString(`{"requestId":99,"accept":true}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListPending_ReturnsRequestsWithSenderProfile(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	handler := NewFriendHandler(friends, new(mocks.MockUserRepository), nil)
	router := setupFriendsRouter(handler, 2)

	friends.On("GetPendingRequests", mock.Anything, int64(2)).Return([]models.PendingRequest{
		{
			FriendRequest: models.FriendRequest{ID: 10, SenderID: 1, ReceiverID: 2, Status: models.RequestStatusPending},
			Sender:        models.PublicProfile{ID: 1, Username: "moussa", Name: "Moussa"},
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/friends/request/pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"moussa"`)
}

func TestListFriends_ReturnsProfiles(t *testing.T) {
	friends := new(mocks.MockFriendRepository)
	handler := NewFriendHandler(friends, new(mocks.MockUserRepository), nil)
	router := setupFriendsRouter(handler, 1)

	friends.On("ListFriends", mock.Anything, int64(1)).Return([]models.PublicProfile{
		{ID: 2, Username: "awa", Name: "Awa"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/friends", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Friends []models.PublicProfile `json:"friends"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Friends, 1)
	require.Equal(t, "awa", resp.Friends[0].Username)
}
