package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

type CalculatorKind string

// remember to add new kinds to the validCalculatorKinds map
const (
	CalculatorFlatRate             CalculatorKind = "flat_rate"
	CalculatorFlatPercentItemTotal CalculatorKind = "flat_percent_item_total"
	CalculatorFlatPercentPerItem   CalculatorKind = "flat_percent_per_item"
	CalculatorPerItem              CalculatorKind = "per_item"
)

var validCalculatorKinds = map[CalculatorKind]struct{}{
	CalculatorFlatRate:             {},
	CalculatorFlatPercentItemTotal: {},
	CalculatorFlatPercentPerItem:   {},
	CalculatorPerItem:              {},
}

func ToCalculatorKind(s string) (CalculatorKind, error) {
	kind := CalculatorKind(s)
	if _, ok := validCalculatorKinds[kind]; ok {
		return kind, nil
	}

	return "", errors.New("invalid calculator kind")
}

var hundred = decimal.NewFromInt(100)

// Calculator is a fee formula. Amount is used by flat_rate and per_item,
// Percent by the two percentage kinds. The zero Calculator computes zero.
type Calculator struct {
	Kind    CalculatorKind
	Amount  decimal.Decimal
	Percent decimal.Decimal
}

// LineAmount is the price and quantity of one line a calculator is applied to.
type LineAmount struct {
	Price    decimal.Decimal
	Quantity int
}

func (l LineAmount) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (c Calculator) Compute(lines []LineAmount) decimal.Decimal {
	switch c.Kind {
	case CalculatorFlatRate:
		return c.Amount
	case CalculatorFlatPercentItemTotal:
		return itemTotal(lines).Mul(c.Percent).Div(hundred).Round(2)
	case CalculatorFlatPercentPerItem:
		sum := decimal.Zero
		for _, l := range lines {
			perUnit := l.Price.Mul(c.Percent).Div(hundred).Round(2)
			sum = sum.Add(perUnit.Mul(decimal.NewFromInt(int64(l.Quantity))))
		}
		return sum
	case CalculatorPerItem:
		return c.Amount.Mul(decimal.NewFromInt(int64(totalQuantity(lines))))
	default:
		return decimal.Zero
	}
}

func itemTotal(lines []LineAmount) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

func totalQuantity(lines []LineAmount) int {
	var n int
	for _, l := range lines {
		n += l.Quantity
	}
	return n
}
