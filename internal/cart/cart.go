package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/internal/pricing"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
)

// Line is one cart entry. The Pricing quote is frozen at add time: later rate
// or charge updates never touch it. The snapshot only dies with the line.
type Line struct {
	ProductID  uuid.UUID       `json:"productId"`
	Name       string          `json:"name"`
	Metal      enums.Metal     `json:"metal"`
	Purity     string          `json:"purity"`
	TotalGrams decimal.Decimal `json:"totalGrams"`
	Image      string          `json:"image,omitempty"`
	Pricing    pricing.Quote   `json:"pricing"`
	Quantity   int             `json:"quantity"`
	AddedAt    time.Time       `json:"addedAt"`
}

// Cart is the full document stored under one cart token.
type Cart struct {
	Lines     []Line    `json:"lines"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Total sums quantity-weighted snapshot prices in whole rupees.
func (c *Cart) Total() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.Pricing.FinalPrice * int64(line.Quantity)
	}
	return total
}

// ItemCount sums quantities across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

func (c *Cart) lineIndex(productID uuid.UUID) int {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}
