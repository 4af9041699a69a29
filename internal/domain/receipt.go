package domain

import (
	"fmt"
	"time"
)

// Receipt number format: RCP-YYYYMMDD-NNNN, where NNNN is a monotonically
// increasing counter scoped to the creation date. Unique across all
// subscriptions ever created; cancelled ones keep their number reserved.
const receiptDateLayout = "20060102"

// ReceiptPrefix returns the shared prefix of all receipt numbers issued on day
func ReceiptPrefix(day time.Time) string {
	return fmt.Sprintf("RCP-%s-", day.Format(receiptDateLayout))
}

// FormatReceiptNumber builds the receipt number for the given day and sequence
func FormatReceiptNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s%04d", ReceiptPrefix(day), seq)
}
