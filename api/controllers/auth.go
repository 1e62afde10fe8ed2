package controllers

import (
	"net/http"
	"time"

	"github.com/auraluxe/auraluxe-backend/api/responses"
	"github.com/auraluxe/auraluxe-backend/api/validators"
	pkgauth "github.com/auraluxe/auraluxe-backend/pkg/auth"
	"github.com/auraluxe/auraluxe-backend/pkg/config"
	pkgerrors "github.com/auraluxe/auraluxe-backend/pkg/errors"
	"github.com/auraluxe/auraluxe-backend/pkg/logger"
	"github.com/auraluxe/auraluxe-backend/pkg/security"
)

type adminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

type adminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AdminLogin exchanges the operator password for a bearer token. There is a
// single back-office operator, so no username is taken.
func AdminLogin(cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req adminLoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := security.VerifyPassword(req.Password, cfg.Admin.PasswordHash)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credentials"))
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials"))
			return
		}

		now := time.Now()
		token, err := pkgauth.MintAdminToken(cfg.JWT, now)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token"))
			return
		}

		if logg != nil {
			logg.Info(r.Context(), "admin login succeeded")
		}
		responses.WriteSuccess(w, adminLoginResponse{
			Token:     token,
			ExpiresAt: now.Add(time.Duration(cfg.JWT.ExpirationMinutes) * time.Minute),
		})
	}
}
