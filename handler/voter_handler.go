package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"voting-api/common"
	"voting-api/model"
	"voting-api/service"
)

// VoterHandler holds dependencies for voter-roll endpoints.
type VoterHandler struct {
	service *service.VoterService
}

func NewVoterHandler(s *service.VoterService) *VoterHandler {
	return &VoterHandler{service: s}
}

// CreateVoter godoc
// @Summary      Register as a voter
// @Description  Creates the voter record bound to the authenticated identity. Each identity may register exactly once.
// @Tags         voters
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        record body model.RegisterVoterRequest true "Eligibility attributes"
// @Success      201  {object}  model.VoterRecord
// @Failure      400  {object}  common.AppError "Validation failure (blank fields, age under 18, inconsistent date of birth)"
// @Failure      401  {object}  common.AppError
// @Failure      409  {object}  common.AppError "Identity already registered"
// @Router       /voters/voters/create/ [post]
func (h *VoterHandler) CreateVoter(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RegisterVoterRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	identityID, ok := r.Context().Value(IdentityIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid identity in token", nil)
	}

	record, err := h.service.Register(identityID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrAlreadyRegistered):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not register voter", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(record)
	return nil
}

// GetOwnVoter godoc
// @Summary      Get own voter record
// @Description  Returns the voter record of the authenticated identity.
// @Tags         voters
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  model.VoterRecord
// @Failure      401  {object}  common.AppError
// @Failure      404  {object}  common.AppError "Identity is not registered"
// @Router       /voters/voters/user/ [get]
func (h *VoterHandler) GetOwnVoter(w http.ResponseWriter, r *http.Request) *common.AppError {
	identityID, ok := r.Context().Value(IdentityIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid identity in token", nil)
	}

	record, err := h.service.GetByIdentity(identityID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotRegistered):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not retrieve voter record", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(record)
	return nil
}
