package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculateItemizedBreakdown(t *testing.T) {
	charges := models.Charges{
		MakingCharge:    dec("200"),
		WastagePercent:  dec("3"),
		PackagingCharge: dec("50"),
		GSTPercent:      dec("3"),
	}

	quote, err := Calculate(dec("10"), dec("6000"), charges)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !quote.BasePrice.Equal(dec("60000")) {
		t.Fatalf("expected base price 60000, got %s", quote.BasePrice)
	}
	if !quote.Wastage.Equal(dec("1800")) {
		t.Fatalf("expected wastage 1800, got %s", quote.Wastage)
	}
	if !quote.Subtotal.Equal(dec("62050")) {
		t.Fatalf("expected subtotal 62050, got %s", quote.Subtotal)
	}
	if !quote.GST.Equal(dec("1861.5")) {
		t.Fatalf("expected gst 1861.5, got %s", quote.GST)
	}
	// 63911.5 rounds half away from zero to 63912.
	if quote.FinalPrice != 63912 {
		t.Fatalf("expected final price 63912, got %d", quote.FinalPrice)
	}
}

func TestCalculateZeroChargesIdentity(t *testing.T) {
	cases := []struct {
		name         string
		grams        string
		pricePerGram string
		want         int64
	}{
		{"wholeProduct", "12", "80", 960},
		{"fractionalGrams", "2.5", "80", 200},
		{"roundsNearest", "1.333", "100", 133},
		{"zeroRate", "10", "0", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			quote, err := Calculate(dec(tc.grams), dec(tc.pricePerGram), models.Charges{})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if quote.FinalPrice != tc.want {
				t.Fatalf("expected final price %d, got %d", tc.want, quote.FinalPrice)
			}
		})
	}
}

func TestCalculateMonotonicInRateAndWeight(t *testing.T) {
	charges := models.Charges{
		MakingCharge:    dec("150"),
		WastagePercent:  dec("5"),
		PackagingCharge: dec("25"),
		GSTPercent:      dec("3"),
	}

	prev := int64(-1)
	for _, rate := range []string{"10", "500", "6000", "6000.5", "99999"} {
		quote, err := Calculate(dec("8"), dec(rate), charges)
		if err != nil {
			t.Fatalf("rate %s: %v", rate, err)
		}
		if quote.FinalPrice <= prev {
			t.Fatalf("final price not increasing at rate %s: %d <= %d", rate, quote.FinalPrice, prev)
		}
		prev = quote.FinalPrice
	}

	prev = -1
	for _, grams := range []string{"0.5", "1", "2.25", "10", "100"} {
		quote, err := Calculate(dec(grams), dec("6000"), charges)
		if err != nil {
			t.Fatalf("grams %s: %v", grams, err)
		}
		if quote.FinalPrice <= prev {
			t.Fatalf("final price not increasing at %sg: %d <= %d", grams, quote.FinalPrice, prev)
		}
		prev = quote.FinalPrice
	}
}

func TestCalculateRoundsHalfAwayFromZero(t *testing.T) {
	// 0.5g at 101/g = 50.5, which must round up, not to even.
	quote, err := Calculate(dec("0.5"), dec("101"), models.Charges{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if quote.FinalPrice != 51 {
		t.Fatalf("expected 51, got %d", quote.FinalPrice)
	}
}

func TestCalculateRejectsInvalidAttributes(t *testing.T) {
	cases := []struct {
		name         string
		grams        string
		pricePerGram string
		charges      models.Charges
	}{
		{"zeroGrams", "0", "6000", models.Charges{}},
		{"negativeGrams", "-1", "6000", models.Charges{}},
		{"negativeRate", "10", "-5", models.Charges{}},
		{"negativeMaking", "10", "6000", models.Charges{MakingCharge: dec("-1")}},
		{"negativeWastage", "10", "6000", models.Charges{WastagePercent: dec("-0.1")}},
		{"negativePackaging", "10", "6000", models.Charges{PackagingCharge: dec("-10")}},
		{"negativeGST", "10", "6000", models.Charges{GSTPercent: dec("-3")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Calculate(dec(tc.grams), dec(tc.pricePerGram), tc.charges)
			if err == nil {
				t.Fatal("expected validation error")
			}
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation code, got %v", err)
			}
		})
	}
}

func TestQuoteComponentsSumToFinalPrice(t *testing.T) {
	charges := models.Charges{
		MakingCharge:    dec("375.25"),
		WastagePercent:  dec("7.5"),
		PackagingCharge: dec("49.99"),
		GSTPercent:      dec("3"),
	}

	quote, err := Calculate(dec("4.321"), dec("7321.55"), charges)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := quote.Subtotal.Add(quote.GST).Round(0).IntPart()
	if quote.FinalPrice != want {
		t.Fatalf("final price %d does not equal rounded subtotal+gst %d", quote.FinalPrice, want)
	}
	if quote.FinalPrice < 0 {
		t.Fatalf("final price must be non-negative, got %d", quote.FinalPrice)
	}
}
