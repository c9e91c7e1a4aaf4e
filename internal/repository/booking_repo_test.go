package repository

import (
	"testing"
	"time"

	"torqrides/internal/db"

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

func TestBookingRepository_CreateBooking(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewBookingRepository(mockDB)
	now := time.Now().UTC()

	b := &db.Booking{
		Code:            "A1B2C3D4",
		CustomerName:    "Ravi Kumar",
		CustomerEmail:   "ravi@example.com",
		CustomerPhone:   "+911234567890",
		MotorcycleID:    7,
		PickupTime:      now.Add(24 * time.Hour),
		DropoffTime:     now.Add(72 * time.Hour),
		Status:          "pending",
		PaymentMethodID: 2,
		QuotedTotal:     4500,
		StripeSessionID: "cs_test_123",
		PaymentStatus:   "pending",
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	mock.ExpectQuery("INSERT INTO bookings").
		WithArgs(b.Code, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
			b.MotorcycleID, b.PickupTime, b.DropoffTime, b.Status, b.PaymentMethodID,
			b.QuotedTotal, b.AmountPaid, b.StripeSessionID, b.PaymentStatus,
			b.CreatedAt, b.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(42, now, now))

	err = repo.CreateBooking(b)
	assert.NoError(t, err)
	assert.Equal(t, 42, b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository_GetBookingByCode(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewBookingRepository(mockDB)
	now := time.Now().UTC()

	t.Run("Found", func(t *testing.T) {
		rows := sqlmock.NewRows(bookingCols).
			AddRow(42, "A1B2C3D4", "Ravi Kumar", "ravi@example.com", "+911234567890",
				7, now, now.Add(48*time.Hour), "active", 2,
				4500, 4500, "cs_test_123", "succeeded", now, now)

		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE code = \\$1 AND customer_email = \\$2").
			WithArgs("A1B2C3D4", "ravi@example.com").
			WillReturnRows(rows)

		b, err := repo.GetBookingByCode("A1B2C3D4", "ravi@example.com")
		assert.NoError(t, err)
		assert.Equal(t, 42, b.ID)
		assert.Equal(t, "active", b.Status)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM bookings WHERE code = \\$1 AND customer_email = \\$2").
			WithArgs("NOPE", "ravi@example.com").
			WillReturnRows(sqlmock.NewRows(bookingCols))

		_, err := repo.GetBookingByCode("NOPE", "ravi@example.com")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestBookingRepository_CountOverlapping(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewBookingRepository(mockDB)
	pickup := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	dropoff := pickup.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WithArgs(7, pickup, dropoff).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountOverlapping(7, pickup, dropoff)
	assert.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestBookingRepository_CancelBooking(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	repo := NewBookingRepository(mockDB)

	mock.ExpectQuery("UPDATE bookings SET status = 'cancelled'").
		WithArgs("A1B2C3D4").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("cancelled"))

	status, err := repo.CancelBooking("A1B2C3D4")
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", status)
}
