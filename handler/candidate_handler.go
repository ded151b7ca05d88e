package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"voting-api/common"
	"voting-api/model"
	"voting-api/service"
)

// CandidateHandler holds dependencies for candidate roster endpoints.
type CandidateHandler struct {
	service *service.CandidateService
}

func NewCandidateHandler(s *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{service: s}
}

// ListCandidates godoc
// @Summary      List candidates
// @Description  Returns the candidate roster for the election.
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.Candidate
// @Failure      401  {object}  common.AppError
// @Router       /candidate/candidates/ [get]
func (h *CandidateHandler) ListCandidates(w http.ResponseWriter, r *http.Request) *common.AppError {
	candidates, err := h.service.List()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve candidates", err)
	}
	if candidates == nil {
		candidates = []*model.Candidate{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(candidates)
	return nil
}

// AddCandidate godoc
// @Summary      Add a candidate
// @Description  Adds a candidate to the roster. Requires an administrative identity.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        candidate body model.AddCandidateRequest true "Candidate details"
// @Success      201  {object}  model.Candidate
// @Failure      400  {object}  common.AppError
// @Failure      403  {object}  common.AppError "Admin privileges required"
// @Router       /candidate/candidates/ [post]
func (h *CandidateHandler) AddCandidate(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.AddCandidateRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	candidate, err := h.service.Add(req.FullName, req.Party)
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not add candidate", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(candidate)
	return nil
}

// RemoveCandidate godoc
// @Summary      Remove a candidate
// @Description  Removes a candidate from the roster. Requires an administrative identity.
// @Tags         candidates
// @Security     BearerAuth
// @Param        id path int true "Candidate ID"
// @Success      204
// @Failure      400  {object}  common.AppError "Invalid candidate ID"
// @Failure      403  {object}  common.AppError "Admin privileges required"
// @Failure      404  {object}  common.AppError "Candidate not found"
// @Failure      409  {object}  common.AppError "Candidate has recorded ballots"
// @Router       /candidate/candidates/{id} [delete]
func (h *CandidateHandler) RemoveCandidate(w http.ResponseWriter, r *http.Request) *common.AppError {
	candidateIDStr := r.PathValue("id")
	candidateID, err := strconv.Atoi(candidateIDStr)
	if err != nil {
		return common.NewAppError(http.StatusBadRequest, "Invalid candidate ID in URL path", err)
	}

	if err := h.service.Remove(candidateID); err != nil {
		switch {
		case errors.Is(err, service.ErrCandidateNotFound):
			return common.NewAppError(http.StatusNotFound, err.Error(), err)
		case errors.Is(err, service.ErrCandidateHasVotes):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not remove candidate", err)
		}
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}
