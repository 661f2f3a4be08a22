package domain

import "time"

// DateLayout is the date format used in ledger rows and transaction blocks.
const DateLayout = "2006-01-02"

// FormatDate renders t using DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
