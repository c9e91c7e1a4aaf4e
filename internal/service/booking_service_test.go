package service

import (
	"testing"
	"time"

	"torqrides/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingCols = []string{
	"id", "code", "customer_name", "customer_email", "customer_phone",
	"motorcycle_id", "pickup_time", "dropoff_time", "status", "payment_method_id",
	"quoted_total", "amount_paid", "stripe_session_id", "payment_status",
	"created_at", "updated_at",
}

var motorcycleCols = []string{
	"id", "make", "model", "category", "weekday_rate", "weekend_rate",
	"total_stock", "image_url", "description", "created_at", "updated_at",
}

func newBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewBookingService(
		repository.NewBookingRepository(mockDB),
		repository.NewMotorcycleRepository(mockDB),
		repository.NewCouponRepository(mockDB),
		nil, nil, nil,
	), mock
}

// Extending a booking on a stock-1 motorcycle must not count the booking's
// own current window against that stock.
func TestUpdateBookingPeriod_OwnWindowDoesNotBlock(t *testing.T) {
	svc, mock := newBookingService(t)
	now := time.Now().UTC()

	motoRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(motorcycleCols).
			AddRow(7, "Royal Enfield", "Himalayan 450", "adventure", 1000, 1500, 1, "", "", now, now)
	}

	// Current window: Mon 2024-01-15 09:00 to Tue 16 09:00.
	pickup := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	oldDropoff := pickup.Add(24 * time.Hour)
	newDropoff := pickup.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE code = \\$1").
		WithArgs("A1B2C3D4").
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(42, "A1B2C3D4", "Ravi Kumar", "ravi@example.com", "+911234567890",
				7, pickup, oldDropoff, "active", 2,
				1000, 1000, "cs_test_123", "succeeded", now, now))

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(motoRow())

	// The overlap count leaves the booking itself out.
	mock.ExpectQuery("SELECT COUNT\\(\\*\\)(.+)AND code <> \\$4").
		WithArgs(7, pickup, newDropoff, "A1B2C3D4").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(motoRow())

	mock.ExpectExec("UPDATE bookings SET pickup_time").
		WithArgs("A1B2C3D4", pickup, newDropoff, 2000).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(motoRow())

	resp, err := svc.UpdateBookingPeriod("A1B2C3D4", pickup, newDropoff)
	require.NoError(t, err)
	assert.Equal(t, 2000, resp.QuotedTotal)
	assert.Equal(t, 2, resp.Period.WholeDays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A different booking's overlap still blocks the stock-1 motorcycle.
func TestUpdateBookingPeriod_OtherBookingStillBlocks(t *testing.T) {
	svc, mock := newBookingService(t)
	now := time.Now().UTC()

	pickup := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	oldDropoff := pickup.Add(24 * time.Hour)
	newDropoff := pickup.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM bookings WHERE code = \\$1").
		WithArgs("A1B2C3D4").
		WillReturnRows(sqlmock.NewRows(bookingCols).
			AddRow(42, "A1B2C3D4", "Ravi Kumar", "ravi@example.com", "+911234567890",
				7, pickup, oldDropoff, "active", 2,
				1000, 1000, "cs_test_123", "succeeded", now, now))

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(motorcycleCols).
			AddRow(7, "Royal Enfield", "Himalayan 450", "adventure", 1000, 1500, 1, "", "", now, now))

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)(.+)AND code <> \\$4").
		WithArgs(7, pickup, newDropoff, "A1B2C3D4").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.UpdateBookingPeriod("A1B2C3D4", pickup, newDropoff)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")
	assert.NoError(t, mock.ExpectationsWereMet())
}
