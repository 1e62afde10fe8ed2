package controllers

import (
	"net/http"

	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/api/validators"
	"github.com/auraluxe/auraluxe-backend/internal/concierge"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
)

type conciergeRequest struct {
	Query string `json:"query" validate:"required,max=500"`
}

// ConciergeAsk answers a freeform styling question with catalog suggestions.
func ConciergeAsk(svc *concierge.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req conciergeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Ask(r.Context(), req.Query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, reply)
	}
}
