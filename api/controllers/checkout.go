package controllers

import (
	"net/http"

	"github.com/auraluxe/auraluxe-backend/api/middleware"
	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/api/validators"
	"github.com/auraluxe/auraluxe-backend/internal/checkout"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

type checkoutRequest struct {
	CustomerName string `json:"customerName" validate:"required"`
	Phone        string `json:"phone" validate:"required"`
	Address      string `json:"address" validate:"required"`
}

// Checkout turns the shopper's cart into an order and returns it, reference
// included.
func Checkout(svc checkout.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), middleware.CartToken(r.Context()), checkout.Input{
			CustomerName: req.CustomerName,
			Phone:        req.Phone,
			Address:      req.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, toOrderView(*order))
	}
}
