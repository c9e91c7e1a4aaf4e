package service

import (
	"testing"
	"time"

	"torqrides/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cartCols = []string{"id", "session_key", "coupon_code", "created_at", "updated_at"}

var cartItemCols = []string{"id", "cart_id", "motorcycle_id", "pickup_time", "dropoff_time", "quantity", "created_at"}

var couponCols = []string{"id", "code", "percent_off", "expires_at", "active", "created_at"}

func newCartService(t *testing.T) (*CartService, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	return NewCartService(
		repository.NewCartRepository(mockDB),
		repository.NewMotorcycleRepository(mockDB),
		repository.NewCouponRepository(mockDB),
		nil,
	), mock
}

// Every read re-quotes the lines at the motorcycle's current rates instead of
// trusting a stored price.
func TestGetCart_RequotesLinesAtCurrentRates(t *testing.T) {
	svc, mock := newCartService(t)
	now := time.Now().UTC()

	// Two weekday days: Mon 2024-01-15 09:00 to Wed 17 09:00.
	pickup := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	dropoff := pickup.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM carts WHERE session_key = \\$1").
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows(cartCols).AddRow(5, "sess-1", "", now, now))

	mock.ExpectQuery("SELECT (.+) FROM cart_items WHERE cart_id = \\$1").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cartItemCols).
			AddRow(11, 5, 7, pickup, dropoff, 2, now))

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(motorcycleCols).
			AddRow(7, "Royal Enfield", "Himalayan 450", "adventure", 1000, 1500, 3, "", "", now, now))

	resp, err := svc.GetCart("sess-1")
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "2 days", resp.Items[0].Period.Label)
	assert.Equal(t, 2000, resp.Items[0].Quote.Total)
	assert.Equal(t, 4000, resp.Items[0].LineTotal) // quantity 2
	assert.Equal(t, 4000, resp.Subtotal)
	assert.Equal(t, 0, resp.Discount)
	assert.Equal(t, 4000, resp.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCart_AppliesActiveCoupon(t *testing.T) {
	svc, mock := newCartService(t)
	now := time.Now().UTC()

	pickup := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	dropoff := pickup.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM carts WHERE session_key = \\$1").
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows(cartCols).AddRow(5, "sess-1", "RIDE10", now, now))

	mock.ExpectQuery("SELECT (.+) FROM cart_items WHERE cart_id = \\$1").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cartItemCols).
			AddRow(11, 5, 7, pickup, dropoff, 2, now))

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(motorcycleCols).
			AddRow(7, "Royal Enfield", "Himalayan 450", "adventure", 1000, 1500, 3, "", "", now, now))

	mock.ExpectQuery("SELECT (.+) FROM coupons WHERE code = \\$1").
		WithArgs("RIDE10").
		WillReturnRows(sqlmock.NewRows(couponCols).
			AddRow(1, "RIDE10", 10, now.Add(24*time.Hour), true, now))

	resp, err := svc.GetCart("sess-1")
	require.NoError(t, err)
	assert.Equal(t, "RIDE10", resp.CouponCode)
	assert.Equal(t, 4000, resp.Subtotal)
	assert.Equal(t, 400, resp.Discount)
	assert.Equal(t, 3600, resp.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A coupon that expired after being applied is dropped from the cart on the
// next read, and the totals come back undiscounted.
func TestGetCart_DropsExpiredCoupon(t *testing.T) {
	svc, mock := newCartService(t)
	now := time.Now().UTC()

	pickup := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	dropoff := pickup.Add(48 * time.Hour)

	mock.ExpectQuery("SELECT (.+) FROM carts WHERE session_key = \\$1").
		WithArgs("sess-1").
		WillReturnRows(sqlmock.NewRows(cartCols).AddRow(5, "sess-1", "GONE10", now, now))

	mock.ExpectQuery("SELECT (.+) FROM cart_items WHERE cart_id = \\$1").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows(cartItemCols).
			AddRow(11, 5, 7, pickup, dropoff, 1, now))

	mock.ExpectQuery("SELECT (.+) FROM motorcycles WHERE id = \\$1").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(motorcycleCols).
			AddRow(7, "Royal Enfield", "Himalayan 450", "adventure", 1000, 1500, 3, "", "", now, now))

	mock.ExpectQuery("SELECT (.+) FROM coupons WHERE code = \\$1").
		WithArgs("GONE10").
		WillReturnRows(sqlmock.NewRows(couponCols))

	mock.ExpectExec("UPDATE carts SET coupon_code = \\$2").
		WithArgs(5, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.GetCart("sess-1")
	require.NoError(t, err)
	assert.Empty(t, resp.CouponCode)
	assert.Equal(t, 2000, resp.Subtotal)
	assert.Equal(t, 0, resp.Discount)
	assert.Equal(t, 2000, resp.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name       string
		subtotal   int
		percentOff int
		expected   int
	}{
		{"No coupon", 5000, 0, 0},
		{"Ten percent", 5000, 10, 500},
		{"Truncates toward zero", 999, 10, 99},
		{"Full discount", 5000, 100, 5000},
		{"Percent clamped at 100", 5000, 150, 5000},
		{"Zero subtotal", 0, 25, 0},
		{"Negative subtotal", -100, 25, 0},
		{"Negative percent", 5000, -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DiscountAmount(tt.subtotal, tt.percentOff))
		})
	}
}
