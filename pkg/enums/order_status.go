package enums

import (
	"fmt"
	"strings"
)

// OrderStatus tracks fulfillment progress. Statuses carry no transition rules;
// the operator may set any status from any other.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "Pending"
	OrderStatusPacked         OrderStatus = "Packed"
	OrderStatusOutForDelivery OrderStatus = "Out for Delivery"
	OrderStatusDelivered      OrderStatus = "Delivered"
)

var orderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:        {},
	OrderStatusPacked:         {},
	OrderStatusOutForDelivery: {},
	OrderStatusDelivered:      {},
}

func (s OrderStatus) String() string {
	return string(s)
}

func (s OrderStatus) IsValid() bool {
	_, ok := orderStatuses[s]
	return ok
}

// ParseOrderStatus validates a status label, case-insensitively.
func ParseOrderStatus(value string) (OrderStatus, error) {
	trimmed := strings.TrimSpace(value)
	for status := range orderStatuses {
		if strings.EqualFold(trimmed, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown order status %q", value)
}
