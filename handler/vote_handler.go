package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"voting-api/common"
	"voting-api/model"
	"voting-api/service"
)

// VoteHandler holds dependencies for ballot casting and tally endpoints.
type VoteHandler struct {
	service *service.BallotService
}

func NewVoteHandler(s *service.BallotService) *VoteHandler {
	return &VoteHandler{service: s}
}

// CastVote godoc
// @Summary      Cast a ballot
// @Description  Records one vote for the authenticated voter. Each identity may cast at most one ballot per election; a second attempt fails without mutating state.
// @Tags         votes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        vote body model.CastVoteRequest true "Candidate to vote for, with an optional wallet address recorded for audit"
// @Success      201  {object}  model.Ballot
// @Failure      400  {object}  common.AppError "Unknown candidate or invalid payload"
// @Failure      401  {object}  common.AppError
// @Failure      403  {object}  common.AppError "Identity not registered or not eligible"
// @Failure      409  {object}  common.AppError "A ballot was already cast for this identity"
// @Failure      410  {object}  common.AppError "Election window is closed"
// @Router       /votes/api/votes/ [post]
func (h *VoteHandler) CastVote(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.CastVoteRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	identityID, ok := r.Context().Value(IdentityIDKey).(int)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid identity in token", nil)
	}
	isAdmin, ok := r.Context().Value(IsAdminKey).(bool)
	if !ok {
		return common.NewAppError(http.StatusUnauthorized, "Invalid identity in token", nil)
	}

	ballot, err := h.service.Cast(identityID, isAdmin, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnknownCandidate), errors.Is(err, service.ErrValidation):
			return common.NewAppError(http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, service.ErrNotRegistered), errors.Is(err, service.ErrNotEligible):
			return common.NewAppError(http.StatusForbidden, err.Error(), err)
		case errors.Is(err, service.ErrAlreadyVoted):
			return common.NewAppError(http.StatusConflict, err.Error(), err)
		case errors.Is(err, service.ErrWindowClosed):
			return common.NewAppError(http.StatusGone, err.Error(), err)
		default:
			return common.NewAppError(http.StatusInternalServerError, "Could not cast vote", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(ballot)
	return nil
}

// Results godoc
// @Summary      Ranked election results
// @Description  Returns the full tally ranked by vote count descending, candidate id ascending on ties.
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   model.CandidateResult
// @Failure      401  {object}  common.AppError
// @Router       /votes/api/votes/results/ [get]
func (h *VoteHandler) Results(w http.ResponseWriter, r *http.Request) *common.AppError {
	results, err := h.service.Results()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not compute results", err)
	}
	if results == nil {
		results = []*model.CandidateResult{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(results)
	return nil
}

// TopWinners godoc
// @Summary      Top three candidates
// @Description  Returns the three candidates with the most votes.
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  common.AppError
// @Router       /votes/api/votes/top-winners/ [get]
func (h *VoteHandler) TopWinners(w http.ResponseWriter, r *http.Request) *common.AppError {
	winners, err := h.service.TopWinners()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not compute top winners", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if len(winners) == 0 {
		json.NewEncoder(w).Encode(map[string]string{"message": "No votes have been cast yet."})
		return nil
	}
	json.NewEncoder(w).Encode(map[string]interface{}{"top_winners": winners})
	return nil
}
