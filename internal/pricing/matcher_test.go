package pricing

import (
	"testing"

	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

func TestMatchRateExact(t *testing.T) {
	rates := []models.MetalRate{
		{Metal: enums.MetalGold, Purity: "22kt", PricePerGram: dec("6000")},
		{Metal: enums.MetalSilver, Purity: "925 melting", PricePerGram: dec("80")},
	}

	match, err := MatchRate(enums.MetalGold, "22kt", rates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if match.Fallback {
		t.Fatal("exact match must not be flagged as fallback")
	}
	if match.Rate.Metal != enums.MetalGold || !match.Rate.PricePerGram.Equal(dec("6000")) {
		t.Fatalf("expected gold 22kt rate, got %s %s", match.Rate.Metal, match.Rate.PricePerGram)
	}
}

func TestMatchRatePrefersExactOverPosition(t *testing.T) {
	rates := []models.MetalRate{
		{Metal: enums.MetalSilver, Purity: "925 melting", PricePerGram: dec("80")},
		{Metal: enums.MetalGold, Purity: "22kt", PricePerGram: dec("6000")},
	}

	match, err := MatchRate(enums.MetalGold, "22kt", rates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if match.Fallback || match.Rate.Metal != enums.MetalGold {
		t.Fatalf("matcher must never pick the silver rate for a gold product, got %s", match.Rate.Metal)
	}
}

func TestMatchRateDistinguishesPurities(t *testing.T) {
	rates := []models.MetalRate{
		{Metal: enums.MetalGold, Purity: "22kt", PricePerGram: dec("6000")},
		{Metal: enums.MetalGold, Purity: "18kt", PricePerGram: dec("4900")},
	}

	match, err := MatchRate(enums.MetalGold, "18kt", rates)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if match.Fallback || !match.Rate.PricePerGram.Equal(dec("4900")) {
		t.Fatalf("expected 18kt rate, got %s (fallback=%v)", match.Rate.PricePerGram, match.Fallback)
	}
}

func TestMatchRateFallsBackToFirstRate(t *testing.T) {
	rates := []models.MetalRate{
		{Metal: enums.MetalSilver, Purity: "925 melting", PricePerGram: dec("80")},
	}

	// No gold rate exists: the matcher falls back to the first entry of the
	// full collection rather than failing. Kept for compatibility; the
	// Fallback flag is how callers observe it.
	match, err := MatchRate(enums.MetalGold, "22kt", rates)
	if err != nil {
		t.Fatalf("expected fallback, got error %v", err)
	}
	if !match.Fallback {
		t.Fatal("expected fallback flag to be set")
	}
	if !match.Rate.PricePerGram.Equal(dec("80")) {
		t.Fatalf("expected the sole available rate, got %s", match.Rate.PricePerGram)
	}
}

func TestMatchRateEmptyCollection(t *testing.T) {
	_, err := MatchRate(enums.MetalGold, "22kt", nil)
	if err == nil {
		t.Fatal("expected error for empty rate collection")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNoRatesConfigured {
		t.Fatalf("expected NO_RATES_CONFIGURED, got %v", err)
	}
}
