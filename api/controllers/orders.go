package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/api/validators"
	"github.com/auraluxe/auraluxe-backend/internal/orders"
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type orderView struct {
	ID           uuid.UUID      `json:"id"`
	Reference    string         `json:"reference"`
	CustomerName string         `json:"customerName"`
	Phone        string         `json:"phone"`
	Address      string         `json:"address"`
	Total        int64          `json:"total"`
	Status       string         `json:"status"`
	Items        []lineItemView `json:"items"`
	CreatedAt    time.Time      `json:"createdAt"`
}

type lineItemView struct {
	ProductID  *uuid.UUID      `json:"productId,omitempty"`
	Name       string          `json:"name"`
	Metal      enums.Metal     `json:"metal"`
	Purity     string          `json:"purity"`
	TotalGrams decimal.Decimal `json:"totalGrams"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	Wastage    decimal.Decimal `json:"wastage"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	GST        decimal.Decimal `json:"gst"`
	FinalPrice int64           `json:"finalPrice"`
	Quantity   int             `json:"quantity"`
	LineTotal  int64           `json:"lineTotal"`
}

func toOrderView(order models.Order) orderView {
	items := make([]lineItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, lineItemView{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Metal:      item.Metal,
			Purity:     item.Purity,
			TotalGrams: item.TotalGrams,
			BasePrice:  item.BasePrice,
			Wastage:    item.Wastage,
			Subtotal:   item.Subtotal,
			GST:        item.GST,
			FinalPrice: item.FinalPrice,
			Quantity:   item.Quantity,
			LineTotal:  item.LineTotal,
		})
	}
	return orderView{
		ID:           order.ID,
		Reference:    order.Reference,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		Address:      order.Address,
		Total:        order.Total,
		Status:       order.Status.String(),
		Items:        items,
		CreatedAt:    order.CreatedAt,
	}
}

func AdminOrderList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views := make([]orderView, 0, len(listed))
		for _, order := range listed {
			views = append(views, toOrderView(order))
		}
		responses.WriteSuccess(w, views)
	}
}

func AdminOrderDetail(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderView(*order))
	}
}

func AdminOrderUpdateStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(req.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		order, err := svc.UpdateStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderView(*order))
	}
}

// OrderTrack lets a shopper look up their order by the reference printed on
// the confirmation page. No authentication; the reference is the credential.
func OrderTrack(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reference := chi.URLParam(r, "reference")
		order, err := svc.GetByReference(r.Context(), reference)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toOrderView(*order))
	}
}
