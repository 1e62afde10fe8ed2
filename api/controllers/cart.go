package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/auraluxe/auraluxe-backend/api/middleware"
	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/api/validators"
	"github.com/auraluxe/auraluxe-backend/internal/cart"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

type cartItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
}

type cartQuantityRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Delta     int       `json:"delta" validate:"required"`
}

type cartResponse struct {
	Lines     []cart.Line `json:"lines"`
	ItemCount int         `json:"itemCount"`
	Total     int64       `json:"total"`
}

func toCartResponse(c *cart.Cart) cartResponse {
	lines := c.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartResponse{
		Lines:     lines,
		ItemCount: c.ItemCount(),
		Total:     c.Total(),
	}
}

func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current, err := svc.Get(r.Context(), middleware.CartToken(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(current))
	}
}

func CartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartItemRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.Add(r.Context(), middleware.CartToken(r.Context()), req.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(current))
	}
}

func CartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.Remove(r.Context(), middleware.CartToken(r.Context()), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(current))
	}
}

func CartUpdateQuantity(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		current, err := svc.UpdateQuantity(r.Context(), middleware.CartToken(r.Context()), req.ProductID, req.Delta)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(current))
	}
}

func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context(), middleware.CartToken(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toCartResponse(&cart.Cart{}))
	}
}
