package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"voting-api/common"
	"voting-api/model"
	"voting-api/service"
)

// AuthHandler holds dependencies for account and session endpoints.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(s *service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

// Register godoc
// @Summary      Create a new account
// @Description  Registers an identity with a phone number and password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        account body model.RegisterIdentityRequest true "Account credentials"
// @Success      201  {object}  model.Identity
// @Failure      400  {object}  common.AppError "Validation failure"
// @Failure      409  {object}  common.AppError "Phone number already registered"
// @Router       /user/register/ [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterIdentityRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	identity, err := h.service.RegisterIdentity(req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhoneTaken):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not create account", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(identity)
	return nil
}

// Login godoc
// @Summary      Authenticate and obtain a token pair
// @Description  Verifies credentials and returns access and refresh tokens plus the admin flag.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        credentials body model.LoginRequest true "Login credentials"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  common.AppError "Invalid credentials"
// @Router       /user/login/ [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.LoginRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	pair, err := h.service.Login(req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not process login", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Refresh godoc
// @Summary      Rotate a refresh token
// @Description  Exchanges a valid refresh token for a new access token and a replacement refresh token. The presented token is invalidated.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token body model.RefreshRequest true "Refresh token"
// @Success      200  {object}  model.TokenPair
// @Failure      401  {object}  common.AppError "Invalid, expired or already-rotated token"
// @Router       /auth/token/refresh/ [post]
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	pair, err := h.service.Refresh(req.Refresh)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			return common.NewAppError(http.StatusUnauthorized, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not refresh token", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(pair)
	return nil
}

// Logout godoc
// @Summary      Log out of all sessions
// @Description  Invalidates every refresh token for the authenticated identity.
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  common.AppError
// @Router       /api/logout/ [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) *common.AppError {
	identityID, ok := r.Context().Value(IdentityIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid identity in token", nil)
	}

	if err := h.service.Logout(identityID); err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not log out", err)
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
