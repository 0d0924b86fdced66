// Package fees back-calculates the fee split of a card-charged session
// package amount. Amounts are in KRW, which has no sub-unit, so every
// component is an integer and the parts always sum back to the gross.
package fees

import (
	"fmt"
	"math"

	"github.com/the5hc/fitscore/internal/ruleset"
)

// Breakdown is the decomposition of a gross card charge.
type Breakdown struct {
	Gross   int64 `json:"gross"`
	Net     int64 `json:"net"`
	VAT     int64 `json:"vat"`
	CardFee int64 `json:"card_fee"`
}

// Calculate splits a gross amount into net revenue, VAT, and card fee
// using the ruleset rates. The card fee applies to the gross charge; VAT
// is back-calculated out of the remainder (the remainder is VAT
// inclusive). Net + VAT + CardFee == Gross by construction.
func Calculate(gross int64, rates ruleset.FeeRules) (Breakdown, error) {
	if gross < 0 {
		return Breakdown{}, fmt.Errorf("gross amount must not be negative, got %d", gross)
	}

	cardFee := int64(math.Round(float64(gross) * rates.CardFeeRate))
	vatBase := gross - cardFee
	vat := int64(math.Round(float64(vatBase) * rates.VATRate / (1 + rates.VATRate)))
	net := gross - cardFee - vat

	return Breakdown{
		Gross:   gross,
		Net:     net,
		VAT:     vat,
		CardFee: cardFee,
	}, nil
}
