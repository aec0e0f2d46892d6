package output

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatPercentage formats a decimal percentage with 1 decimal.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(1) + "%" }

// FormatPoints formats a points total with 2 decimals.
func FormatPoints(points float64) string { return strconv.FormatFloat(points, 'f', 2, 64) }

// FormatRecord renders wins-losses, with ties appended only when there are any.
func FormatRecord(wins, losses, ties int) string {
	if ties == 0 {
		return fmt.Sprintf("%d-%d", wins, losses)
	}
	return fmt.Sprintf("%d-%d-%d", wins, losses, ties)
}

func intToString(v int) string { return strconv.Itoa(v) }

func boolToString(v bool) string { return strconv.FormatBool(v) }
