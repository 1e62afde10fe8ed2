package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// Quote is the fully itemized price of one piece. BasePrice, Wastage,
// Subtotal and GST keep full precision so display layers may round them
// independently without drifting from FinalPrice. FinalPrice is the only
// authoritative rounded figure: whole rupees, half away from zero.
type Quote struct {
	BasePrice  decimal.Decimal `json:"basePrice"`
	Wastage    decimal.Decimal `json:"wastage"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	GST        decimal.Decimal `json:"gst"`
	FinalPrice int64           `json:"finalPrice"`
}

// Calculate derives the itemized quote for a piece from its weight, the
// matched rate and its charge structure. Pure function, no I/O.
//
// The stages are ordered and each feeds the next:
//
//	basePrice = pricePerGram × totalGrams
//	wastage   = basePrice × wastagePercent/100
//	subtotal  = basePrice + wastage + makingCharge + packagingCharge
//	gst       = subtotal × gstPercent/100
//	final     = round(subtotal + gst)
func Calculate(totalGrams, pricePerGram decimal.Decimal, charges models.Charges) (Quote, error) {
	if err := validateAttributes(totalGrams, pricePerGram, charges); err != nil {
		return Quote{}, err
	}

	basePrice := pricePerGram.Mul(totalGrams)
	wastage := basePrice.Mul(charges.WastagePercent.Div(oneHundred))
	subtotal := basePrice.Add(wastage).Add(charges.MakingCharge).Add(charges.PackagingCharge)
	gst := subtotal.Mul(charges.GSTPercent.Div(oneHundred))

	// decimal.Round is half away from zero, the documented rounding.
	finalPrice := subtotal.Add(gst).Round(0).IntPart()

	return Quote{
		BasePrice:  basePrice,
		Wastage:    wastage,
		Subtotal:   subtotal,
		GST:        gst,
		FinalPrice: finalPrice,
	}, nil
}

func validateAttributes(totalGrams, pricePerGram decimal.Decimal, charges models.Charges) error {
	details := map[string]string{}
	if !totalGrams.IsPositive() {
		details["totalGrams"] = "must be greater than zero"
	}
	if pricePerGram.IsNegative() {
		details["pricePerGram"] = "must not be negative"
	}
	if charges.MakingCharge.IsNegative() {
		details["makingCharge"] = "must not be negative"
	}
	if charges.WastagePercent.IsNegative() {
		details["wastagePercent"] = "must not be negative"
	}
	if charges.PackagingCharge.IsNegative() {
		details["packagingCharge"] = "must not be negative"
	}
	if charges.GSTPercent.IsNegative() {
		details["gstPercent"] = "must not be negative"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid product attributes").WithDetails(details)
	}
	return nil
}
