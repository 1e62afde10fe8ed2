package pricing

import (
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
)

// Match is the rate selected for a product. Fallback is true when no exact
// (metal, purity) row existed and the first rate in the collection was used
// instead, a longstanding quirk kept for compatibility. Callers are expected
// to surface fallback matches to operators; with strict matching enabled the
// catalog rejects them outright.
type Match struct {
	Rate     models.MetalRate
	Fallback bool
}

// MatchRate resolves the rate for a (metal, purity) pair against the full
// rate collection. The collection's order matters only to the fallback, so
// callers must pass rates in the store's stable order. Runs once per product;
// batch callers fetch the collection once and reuse it.
func MatchRate(metal enums.Metal, purity string, rates []models.MetalRate) (Match, error) {
	if len(rates) == 0 {
		return Match{}, pkgerrors.New(pkgerrors.CodeNoRatesConfigured, "no metal rates configured")
	}

	for _, rate := range rates {
		if rate.Metal == metal && rate.Purity == purity {
			return Match{Rate: rate}, nil
		}
	}

	return Match{Rate: rates[0], Fallback: true}, nil
}
