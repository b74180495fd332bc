// Package sequence derives human-readable record codes from the codes that
// already exist. Codes are ordered by the numeric value of their suffix, so a
// short code such as CST9 never outranks CST010.
package sequence

import (
	"fmt"
	"strconv"
	"strings"

	"rentcar-backend/internal/domain"
)

const (
	CustomerPrefix = "CST"
	customerWidth  = 3

	invoicePrefix = "INV-"
	invoiceWidth  = 4
)

// InvoicePrefix returns the per-day invoice prefix, e.g. INV-20250115.
func InvoicePrefix(day domain.Date) string {
	return invoicePrefix + day.Compact()
}

// NextCustomerCode returns the code following the highest CST code in
// existing. Entries that are not CST codes are ignored.
func NextCustomerCode(existing []string) string {
	highest := 0
	for _, code := range existing {
		if !strings.HasPrefix(code, CustomerPrefix) {
			continue
		}
		n, ok := parseSeq(strings.TrimPrefix(code, CustomerPrefix))
		if ok && n > highest {
			highest = n
		}
	}
	return format(CustomerPrefix, highest+1, customerWidth)
}

// NextInvoiceNumber returns the next invoice number for day. Only invoices
// carrying that day's prefix count, so the sequence restarts every day.
func NextInvoiceNumber(day domain.Date, existing []string) string {
	prefix := InvoicePrefix(day)
	highest := 0
	for _, inv := range existing {
		if !strings.HasPrefix(inv, prefix+"-") {
			continue
		}
		n, ok := parseSeq(inv[strings.LastIndex(inv, "-")+1:])
		if ok && n > highest {
			highest = n
		}
	}
	return format(prefix+"-", highest+1, invoiceWidth)
}

func parseSeq(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func format(prefix string, n, width int) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}
