package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ticketera/internal/handler"
	"ticketera/internal/model"
	serviceMocks "ticketera/internal/service/mocks"
	apperrors "ticketera/pkg/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTicketTestRouter(actor *model.User) (*gin.Engine, *serviceMocks.TicketServiceMock) {
	router, authRequired, _ := newTestRouter(actor)
	ticketService := serviceMocks.NewTicketServiceMock()
	handler.NewTicketHandler(ticketService).RegisterRoutes(router, authRequired)
	return router, ticketService
}

func TestMyTickets(t *testing.T) {
	wallet := "0x8ba1f109551bD432803012645Ac136ddd64DBA72"
	buyer := &model.User{ID: 2, Role: model.RoleBuyer, WalletAddress: &wallet}

	t.Run("Success", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(buyer)

		ticketService.On("MyTickets", mock.Anything, buyer).Return([]*model.Ticket{
			{TokenID: 42, EventID: 7, Event: &model.Event{ID: 7, Name: "Summer Fest"}},
			{TokenID: 77},
		}, nil).Once()

		req := createAuthedHTTPRequest("GET", "/tickets/my")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var tickets []*model.Ticket
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tickets))
		require.Len(t, tickets, 2)
		assert.Equal(t, int64(42), tickets[0].TokenID)
		assert.Nil(t, tickets[1].Event)
		ticketService.AssertExpectations(t)
	})

	t.Run("Failed - no wallet", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(buyer)

		ticketService.On("MyTickets", mock.Anything, buyer).
			Return(nil, apperrors.ErrMissingWallet).Once()

		req := createAuthedHTTPRequest("GET", "/tickets/my")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		ticketService.AssertExpectations(t)
	})

	t.Run("Failed - missing token", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(nil)

		req := httptest.NewRequest("GET", "/tickets/my", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		ticketService.AssertNotCalled(t, "MyTickets")
	})
}

func TestOwner(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(nil)

		ticketService.On("OwnerOf", mock.Anything, int64(42)).
			Return("0x8ba1f109551bD432803012645Ac136ddd64DBA72", nil).Once()

		req := httptest.NewRequest("GET", "/tickets/42/owner", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "0x8ba1f109551bD432803012645Ac136ddd64DBA72", resp["owner"])
		assert.Equal(t, float64(42), resp["token_id"])
		ticketService.AssertExpectations(t)
	})

	t.Run("Failed - unknown token", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(nil)

		ticketService.On("OwnerOf", mock.Anything, int64(999)).
			Return("", apperrors.ErrTicketNotFound).Once()

		req := httptest.NewRequest("GET", "/tickets/999/owner", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		ticketService.AssertExpectations(t)
	})

	t.Run("Failed - invalid token id", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(nil)

		req := httptest.NewRequest("GET", "/tickets/abc/owner", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		ticketService.AssertNotCalled(t, "OwnerOf")
	})
}

func TestHistory(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(nil)

		ticketService.On("History", mock.Anything, int64(42)).Return([]*model.TransferEntry{
			{From: "0x0000000000000000000000000000000000000000", To: "0x8ba1f109551bD432803012645Ac136ddd64DBA72", BlockNumber: 10, TxHash: "0xabc"},
		}, nil).Once()

		req := httptest.NewRequest("GET", "/tickets/42/history", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var entries []*model.TransferEntry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
		require.Len(t, entries, 1)
		assert.Equal(t, uint64(10), entries[0].BlockNumber)
		ticketService.AssertExpectations(t)
	})

	t.Run("Failed - unknown token", func(t *testing.T) {
		router, ticketService := setupTicketTestRouter(nil)

		ticketService.On("History", mock.Anything, int64(999)).
			Return(nil, apperrors.ErrTicketNotFound).Once()

		req := httptest.NewRequest("GET", "/tickets/999/history", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		ticketService.AssertExpectations(t)
	})
}
