package percent

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Of returns 100*count/total rounded to one decimal place. A zero total yields zero.
func Of(count, total int) decimal.Decimal {
	return OfPlaces(count, total, 1)
}

// OfPlaces is Of with a caller-chosen number of decimal places.
func OfPlaces(count, total int, places int32) decimal.Decimal {
	if total <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(count)).Mul(hundred).Div(decimal.NewFromInt(int64(total))).Round(places)
}

// Mean returns sum/n rounded to the given places. A zero n yields zero.
func Mean(sum float64, n int, places int32) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(sum).Div(decimal.NewFromInt(int64(n))).Round(places)
}

// MeanInt is Mean for integer sums, computed without float error.
func MeanInt(sum int, n int, places int32) decimal.Decimal {
	if n <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(sum)).Div(decimal.NewFromInt(int64(n))).Round(places)
}

// AbsDiff returns |a-b|.
func AbsDiff(a, b decimal.Decimal) decimal.Decimal {
	return a.Sub(b).Abs()
}

// Format renders a percentage with one decimal place and a trailing percent sign.
func Format(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
