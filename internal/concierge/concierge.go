package concierge

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/auraluxe/auraluxe-backend/internal/catalog"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

// Recommender turns a freeform styling query into advice over the current
// catalog. Implementations may call out to an external model; the service
// falls back to a deterministic catalog ranking when they fail.
type Recommender interface {
	Recommend(ctx context.Context, query string, products []catalog.PricedProduct) (string, error)
}

// Suggestion is one recommended piece.
type Suggestion struct {
	ProductID  uuid.UUID `json:"productId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	FinalPrice int64     `json:"finalPrice"`
}

// Reply is the concierge's answer.
type Reply struct {
	Message     string       `json:"message"`
	Suggestions []Suggestion `json:"suggestions"`
	Source      string       `json:"source"`
}

const (
	sourceRemote   = "remote"
	sourceFallback = "fallback"

	maxSuggestions = 3
)

type catalogView interface {
	ListPublic(ctx context.Context) ([]catalog.PricedProduct, error)
}

// Service answers styling questions against the live catalog.
type Service struct {
	catalog catalogView
	remote  Recommender
	timeout time.Duration
	logg    *logger.Logger
}

// NewService builds the concierge. remote may be nil; the static ranking then
// answers everything.
func NewService(view catalogView, remote Recommender, timeout time.Duration, logg *logger.Logger) (*Service, error) {
	if view == nil {
		return nil, fmt.Errorf("catalog view required")
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{catalog: view, remote: remote, timeout: timeout, logg: logg}, nil
}

// Ask answers one styling query. Remote failures degrade to the static
// ranking rather than erroring; shoppers should always get an answer.
func (s *Service) Ask(ctx context.Context, query string) (*Reply, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "query is required")
	}

	products, err := s.catalog.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	if s.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, s.timeout)
		message, err := s.remote.Recommend(rctx, query, products)
		cancel()
		if err == nil {
			return &Reply{
				Message:     message,
				Suggestions: rank(query, products),
				Source:      sourceRemote,
			}, nil
		}
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "query", query), "concierge recommender failed, using fallback")
		}
	}

	suggestions := rank(query, products)
	return &Reply{
		Message:     fallbackMessage(query, suggestions),
		Suggestions: suggestions,
		Source:      sourceFallback,
	}, nil
}

// rank scores products by naive keyword overlap with the query, ties broken
// by price ascending then name, so the same query always yields the same
// answer.
func rank(query string, products []catalog.PricedProduct) []Suggestion {
	terms := strings.Fields(strings.ToLower(query))

	type scored struct {
		product catalog.PricedProduct
		score   int
	}
	rows := make([]scored, 0, len(products))
	for _, p := range products {
		haystack := strings.ToLower(p.Name + " " + p.Category + " " + string(p.Metal) + " " + p.Purity)
		score := 0
		for _, term := range terms {
			if strings.Contains(haystack, term) {
				score++
			}
		}
		rows = append(rows, scored{product: p, score: score})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		if rows[i].product.Pricing.FinalPrice != rows[j].product.Pricing.FinalPrice {
			return rows[i].product.Pricing.FinalPrice < rows[j].product.Pricing.FinalPrice
		}
		return rows[i].product.Name < rows[j].product.Name
	})

	limit := maxSuggestions
	if len(rows) < limit {
		limit = len(rows)
	}
	suggestions := make([]Suggestion, 0, limit)
	for _, row := range rows[:limit] {
		suggestions = append(suggestions, Suggestion{
			ProductID:  row.product.ID,
			Name:       row.product.Name,
			Category:   row.product.Category,
			FinalPrice: row.product.Pricing.FinalPrice,
		})
	}
	return suggestions
}

func fallbackMessage(query string, suggestions []Suggestion) string {
	if len(suggestions) == 0 {
		return "Our collection is being refreshed right now. Please check back soon."
	}
	names := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		names = append(names, s.Name)
	}
	return fmt.Sprintf("For %q we suggest: %s.", query, strings.Join(names, ", "))
}
