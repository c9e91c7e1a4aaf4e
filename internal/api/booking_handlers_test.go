package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"torqrides/internal/entities"
	"torqrides/internal/repository"
	"torqrides/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var motorcycleCols = []string{
	"id", "make", "model", "category", "weekday_rate", "weekend_rate",
	"total_stock", "image_url", "description", "created_at", "updated_at",
}

func newQuoteHandler(t *testing.T) (*UserBookingHandler, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	svc := service.NewBookingService(
		repository.NewBookingRepository(mockDB),
		repository.NewMotorcycleRepository(mockDB),
		repository.NewCouponRepository(mockDB),
		nil, nil, nil,
	)
	return NewUserBookingHandler(svc), mock
}

func TestQuoteHandler(t *testing.T) {
	h, mock := newQuoteHandler(t)
	now := time.Now().UTC()

	// 2024-01-15 is a Monday.
	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(motorcycleCols).
			AddRow(7, "Royal Enfield", "Himalayan 450", "adventure", 1000, 1500, 4, "", "", now, now))

	body, _ := json.Marshal(QuoteRequest{
		MotorcycleID: 7,
		PickupDate:   "2024-01-15",
		PickupTime:   "09:00",
		DropoffDate:  "2024-01-17",
		DropoffTime:  "09:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Quote(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp entities.QuoteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 7, resp.MotorcycleID)
	assert.Equal(t, 2, resp.Period.WholeDays)
	assert.Equal(t, 2, resp.Period.WeekdayCount)
	assert.Equal(t, "2 days", resp.Period.Label)
	assert.Equal(t, 2000, resp.Quote.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteHandlerInvalidTime(t *testing.T) {
	h, mock := newQuoteHandler(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(motorcycleCols).
			AddRow(7, "Royal Enfield", "Himalayan 450", "adventure", 1000, 1500, 4, "", "", now, now))

	body, _ := json.Marshal(QuoteRequest{
		MotorcycleID: 7,
		PickupDate:   "2024-01-15",
		PickupTime:   "25:00",
		DropoffDate:  "2024-01-17",
		DropoffTime:  "09:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/quote", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Quote(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid time format")
}
