package earnings

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/tally/internal/models"
	"github.com/shopspring/decimal"
)

// ErrInvalidRate is returned when a daily rate cannot be used for pay.
var ErrInvalidRate = errors.New("daily rate must not be negative")

// PayFraction is the share of the daily rate earned on a day.
type PayFraction int

const (
	PayNone PayFraction = iota
	PayHalf
	PayFull
)

var half = decimal.NewFromFloat(0.5)

// Multiplier returns the fraction as a decimal factor.
func (p PayFraction) Multiplier() decimal.Decimal {
	switch p {
	case PayFull:
		return decimal.NewFromInt(1)
	case PayHalf:
		return half
	default:
		return decimal.Zero
	}
}

func (p PayFraction) String() string {
	switch p {
	case PayFull:
		return "full"
	case PayHalf:
		return "half"
	default:
		return "none"
	}
}

// Classify decides how much of a day a record pays, in this order:
// absence pays nothing; shifts are merged across all clients of the day
// (all day, or morning and evening, is a full day; one half is half a day);
// legacy hours always pay a full day; assigned clients without detail pay a
// full day; anything else pays nothing.
func Classify(record models.WorkRecord) PayFraction {
	if record.IsAbsence {
		return PayNone
	}

	switch data := record.Shifts.(type) {
	case models.Shifts:
		if len(data) > 0 {
			return classifyShifts(data)
		}
	case models.LegacyHours:
		if len(data) > 0 {
			return PayFull
		}
	}

	if len(record.ClientIDs) > 0 {
		return PayFull
	}
	return PayNone
}

func classifyShifts(shifts models.Shifts) PayFraction {
	var hasFullDay, hasMorning, hasEvening bool
	for _, shift := range shifts {
		hasFullDay = hasFullDay || shift.AllDay
		hasMorning = hasMorning || shift.Morning
		hasEvening = hasEvening || shift.Evening
	}

	switch {
	case hasFullDay || (hasMorning && hasEvening):
		return PayFull
	case hasMorning || hasEvening:
		return PayHalf
	default:
		return PayNone
	}
}

// DailyEarnings returns the pay for one record at the given daily rate.
func DailyEarnings(record models.WorkRecord, dailyRate decimal.Decimal) (decimal.Decimal, error) {
	if dailyRate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrInvalidRate, dailyRate)
	}

	return dailyRate.Mul(Classify(record).Multiplier()), nil
}
