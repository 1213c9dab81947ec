package invoice

import (
	"fmt"
	"time"
)

// Sequence is the invoice counter for one prefix and year
type Sequence struct {
	Prefix    string    `db:"prefix"`
	Year      int       `db:"year"`
	LastValue int64     `db:"last_value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// FormatNumber renders an invoice number like INV2025001
func FormatNumber(prefix string, year int, count int64) string {
	return fmt.Sprintf("%s%d%03d", prefix, year, count)
}

// NumberPrefix is the part every invoice number of the year starts with
func NumberPrefix(prefix string, year int) string {
	return fmt.Sprintf("%s%d", prefix, year)
}
