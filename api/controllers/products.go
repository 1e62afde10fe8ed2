package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/api/validators"
	"github.com/auraluxe/auraluxe-backend/internal/catalog"
	"github.com/auraluxe/auraluxe-backend/pkg/db/models"
	"github.com/auraluxe/auraluxe-backend/pkg/enums"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

type createProductRequest struct {
	Name            string              `json:"name" validate:"required"`
	Description     *string             `json:"description"`
	Category        string              `json:"category" validate:"required"`
	Metal           string              `json:"metal" validate:"required,oneof=silver gold platinum"`
	Purity          string              `json:"purity" validate:"required"`
	TotalGrams      decimal.Decimal     `json:"totalGrams" validate:"required"`
	Stock           int                 `json:"stock" validate:"min=0"`
	MakingCharge    decimal.Decimal     `json:"makingCharge"`
	WastagePercent  decimal.Decimal     `json:"wastagePercent"`
	PackagingCharge decimal.Decimal     `json:"packagingCharge"`
	GSTPercent      decimal.Decimal     `json:"gstPercent"`
	Images          []productImageInput `json:"images" validate:"dive"`
	IsActive        bool                `json:"isActive"`
}

type productImageInput struct {
	URL string  `json:"url" validate:"required,url"`
	Alt *string `json:"alt"`
}

type setStockRequest struct {
	Stock int `json:"stock" validate:"min=0"`
}

// ProductList serves the public storefront grid: active pieces only, priced
// against the current rates.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.ListPublic(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		priced, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if priced == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}
		responses.WriteSuccess(w, priced)
	}
}

// AdminProductList includes hidden pieces so the back office can manage them.
func AdminProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listed, err := svc.ListAdmin(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, listed)
	}
}

func AdminProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createProductRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		metal, err := enums.ParseMetal(req.Metal)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid metal"))
			return
		}

		input := catalog.CreateProductInput{
			Name:        req.Name,
			Description: req.Description,
			Category:    req.Category,
			Metal:       metal,
			Purity:      req.Purity,
			TotalGrams:  req.TotalGrams,
			Stock:       req.Stock,
			Charges: models.Charges{
				MakingCharge:    req.MakingCharge,
				WastagePercent:  req.WastagePercent,
				PackagingCharge: req.PackagingCharge,
				GSTPercent:      req.GSTPercent,
			},
			IsActive: req.IsActive,
		}
		for _, img := range req.Images {
			input.Images = append(input.Images, catalog.ImageInput{URL: img.URL, Alt: img.Alt})
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

func AdminProductSetStock(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req setStockRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.SetStock(r.Context(), id, req.Stock)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func AdminProductToggle(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		updated, err := svc.ToggleActive(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func parseUUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid id").
			WithDetails(map[string]string{name: "must be a uuid"})
	}
	return id, nil
}
