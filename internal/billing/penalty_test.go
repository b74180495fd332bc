package billing

import (
	"math"
	"testing"

	"rentcar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatePenalty(t *testing.T) {
	scheduled := date(t, "2025-01-20")

	t.Run("Returned on schedule", func(t *testing.T) {
		p, err := LatePenalty(scheduled, scheduled, DefaultLateFeePerDay)
		require.NoError(t, err)
		assert.Equal(t, 0, p.DaysLate)
		assert.Equal(t, int64(0), p.Amount)
	})

	t.Run("Returned early", func(t *testing.T) {
		p, err := LatePenalty(scheduled, date(t, "2025-01-18"), DefaultLateFeePerDay)
		require.NoError(t, err)
		assert.Equal(t, Penalty{}, p)
	})

	t.Run("One day late", func(t *testing.T) {
		p, err := LatePenalty(scheduled, date(t, "2025-01-21"), DefaultLateFeePerDay)
		require.NoError(t, err)
		assert.Equal(t, 1, p.DaysLate)
		assert.Equal(t, DefaultLateFeePerDay, p.Amount)
	})

	t.Run("No cap on long delays", func(t *testing.T) {
		p, err := LatePenalty(scheduled, date(t, "2025-04-30"), 75000)
		require.NoError(t, err)
		assert.Equal(t, 100, p.DaysLate)
		assert.Equal(t, int64(7500000), p.Amount)
	})

	t.Run("Centuries late", func(t *testing.T) {
		p, err := LatePenalty(date(t, "0001-01-01"), date(t, "9999-12-31"), DefaultLateFeePerDay)
		require.NoError(t, err)
		assert.Equal(t, 3652058, p.DaysLate)
		assert.Equal(t, int64(3652058)*DefaultLateFeePerDay, p.Amount)
	})

	t.Run("Fee overflow is rejected", func(t *testing.T) {
		_, err := LatePenalty(date(t, "0001-01-01"), date(t, "9999-12-31"), math.MaxInt64/1000)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), "out of range")
	})
}

func TestSettle(t *testing.T) {
	rental := &domain.Rental{
		EndDate:     date(t, "2025-01-20"),
		TotalCharge: 1050000,
	}

	s, err := Settle(rental, date(t, "2025-01-22"), 50000)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-22", s.ReturnedOn.String())
	assert.Equal(t, 2, s.DaysLate)
	assert.Equal(t, int64(100000), s.Penalty)
	assert.Equal(t, int64(1150000), s.TotalDue)

	onTime, err := Settle(rental, date(t, "2025-01-20"), 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), onTime.Penalty)
	assert.Equal(t, rental.TotalCharge, onTime.TotalDue)
}

func TestSettle_TotalDueOverflow(t *testing.T) {
	rental := &domain.Rental{
		EndDate:     date(t, "2025-01-20"),
		TotalCharge: math.MaxInt64 - 10000,
	}

	_, err := Settle(rental, date(t, "2025-01-21"), 50000)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "total due")
}
