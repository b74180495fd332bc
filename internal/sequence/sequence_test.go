package sequence

import (
	"testing"

	"rentcar-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestNextCustomerCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		expected string
	}{
		{"Empty set starts at one", nil, "CST001"},
		{"Increments the maximum", []string{"CST001", "CST007", "CST003"}, "CST008"},
		{"Numeric not lexicographic order", []string{"CST9", "CST010"}, "CST011"},
		{"Short manual edit still counts", []string{"CST002", "CST12"}, "CST013"},
		{"Ignores malformed codes", []string{"CSTABC", "XYZ999", "CST004"}, "CST005"},
		{"Grows past three digits", []string{"CST999"}, "CST1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NextCustomerCode(tt.existing))
		})
	}
}

func TestNextInvoiceNumber(t *testing.T) {
	day := domain.Date{Year: 2025, Month: 1, Day: 15}

	t.Run("Continues the day's sequence", func(t *testing.T) {
		got := NextInvoiceNumber(day, []string{"INV-20250115-0001", "INV-20250115-0003", "INV-20250115-0002"})
		assert.Equal(t, "INV-20250115-0004", got)
	})

	t.Run("New day restarts at one", func(t *testing.T) {
		got := NextInvoiceNumber(day, []string{"INV-20250114-0042"})
		assert.Equal(t, "INV-20250115-0001", got)
	})

	t.Run("No invoices at all", func(t *testing.T) {
		assert.Equal(t, "INV-20250115-0001", NextInvoiceNumber(day, nil))
	})

	t.Run("Numeric ordering beyond four digits", func(t *testing.T) {
		got := NextInvoiceNumber(day, []string{"INV-20250115-9999", "INV-20250115-10000"})
		assert.Equal(t, "INV-20250115-10001", got)
	})

	t.Run("Ignores malformed numbers", func(t *testing.T) {
		got := NextInvoiceNumber(day, []string{"INV-20250115-XXXX", "INV-20250115-0002"})
		assert.Equal(t, "INV-20250115-0003", got)
	})

	assert.Equal(t, "INV-20250115", InvoicePrefix(day))
}
