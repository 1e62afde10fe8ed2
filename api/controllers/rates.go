package controllers

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/api/validators"
	"github.com/auraluxe/auraluxe-backend/internal/rates"
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

type upsertRateRequest struct {
	Metal        string          `json:"metal" validate:"required,oneof=silver gold platinum"`
	Purity       string          `json:"purity" validate:"required"`
	PricePerGram decimal.Decimal `json:"pricePerGram" validate:"required"`
}

type rateView struct {
	Metal        enums.Metal     `json:"metal"`
	Purity       string          `json:"purity"`
	PricePerGram decimal.Decimal `json:"pricePerGram"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

func toRateView(rate models.MetalRate) rateView {
	return rateView{
		Metal:        rate.Metal,
		Purity:       rate.Purity,
		PricePerGram: rate.PricePerGram,
		UpdatedAt:    rate.UpdatedAt,
	}
}

// RateList serves the rate table to the storefront, which renders live
// price-per-gram figures from it. Same payload as the admin listing.
func RateList(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return listRates(svc, logg)
}

func AdminRateList(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return listRates(svc, logg)
}

func listRates(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		views := make([]rateView, 0, len(listed))
		for _, rate := range listed {
			views = append(views, toRateView(rate))
		}
		responses.WriteSuccess(w, views)
	}
}

// AdminRateUpsert creates or overwrites the (metal, purity) rate. Every
// storefront quote after this call reflects the new figure.
func AdminRateUpsert(svc rates.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req upsertRateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		metal, err := enums.ParseMetal(req.Metal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid metal"))
			return
		}

		rate, err := svc.Upsert(r.Context(), rates.UpsertInput{
			Metal:        metal,
			Purity:       req.Purity,
			PricePerGram: req.PricePerGram,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, toRateView(*rate))
	}
}
