package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/internal/validation"
	"github.com/taskhive/backend/pkg/httpcontext"
	authUC "github.com/taskhive/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register a new user
// @Tags auth
// @Router /register [post]
func (h *AuthHandler) Register(ctx *fasthttp.RequestCtx) {
	var req transport.RegisterRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.MessageResponse{Message: "invalid payload"})
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	failure, err := validation.First(stdCtx,
		validation.NewField("name", req.Name,
			validation.Required(), validation.String(), validation.Max(255)),
		validation.NewField("email", req.Email,
			validation.Required(), validation.String(), validation.Email(), validation.Max(255),
			validation.Unique(func(c context.Context) (bool, error) { return h.uc.EmailTaken(c, req.Email) })),
		validation.NewField("password", req.Password,
			validation.Required(), validation.String(), validation.Min(8),
			validation.Confirmed(req.PasswordConfirmation)),
	)
	if err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.RegisterFailureResponse{
			Message: "Registration failed",
			Error:   err.Error(),
		})
		return
	}
	if failure != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.MessageResponse{Message: failure.Message})
		return
	}

	user, token, err := h.uc.Register(stdCtx, req.Name, req.Email, req.Password)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeConflict) {
			h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.MessageResponse{Message: domain.ErrEmailTaken.Message})
			return
		}
		h.logger.Error("registration failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.RegisterFailureResponse{
			Message: "Registration failed",
			Error:   err.Error(),
		})
		return
	}

	h.respondJSON(ctx, http.StatusCreated, transport.RegisterResponse{
		User:  user,
		Token: token.Value,
	})
}

// @Summary Log in with email and password
// @Tags auth
// @Router /login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	var req transport.LoginRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewStatusError("invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	failure, err := validation.First(stdCtx,
		validation.NewField("email", req.Email,
			validation.Required(), validation.Email()),
		validation.NewField("password", req.Password,
			validation.Required()),
	)
	if err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewFailure("An error occurred during login.", err))
		return
	}
	if failure != nil {
		h.respondJSON(ctx, http.StatusUnprocessableEntity, transport.NewStatusError(failure.Message))
		return
	}

	user, token, err := h.uc.Login(stdCtx, req.Email, req.Password)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
			h.respondJSON(ctx, http.StatusUnauthorized, transport.NewStatusError(domain.ErrInvalidCredentials.Message))
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewFailure("An error occurred during login.", err))
		return
	}

	h.respondJSON(ctx, http.StatusOK, transport.LoginResponse{
		Status:  transport.StatusSuccess,
		Message: "Login successful! Welcome back " + user.Name,
		User:    user,
		Token:   token.Value,
	})
}

// @Summary Revoke the presented token
// @Tags auth
// @Router /logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx, bearerToken(ctx)); err != nil {
		h.logger.Warn("logout failed", zap.Error(err))
	}
	h.respondJSON(ctx, http.StatusOK, transport.MessageResponse{Message: "Logged out successfully"})
}
