package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/finquest/finquest/internal/quest"
)

// SubmitQuestRequest carries the answer index for each question in order.
type SubmitQuestRequest struct {
	Answers []int `json:"answers" validate:"required,min=1,dive,gte=0"`
}

// SubmitQuestResponse is the graded submission with a player-facing message.
type SubmitQuestResponse struct {
	Message string `json:"message"`
	*quest.SubmitResult
}

// QuestHandler handles quest HTTP requests
type QuestHandler struct {
	questSvc quest.Service
}

// NewQuestHandler creates a new quest handler
func NewQuestHandler(questSvc quest.Service) *QuestHandler {
	return &QuestHandler{questSvc: questSvc}
}

// questIDParam parses the {questID} URL parameter. On failure the error
// response has already been written.
func questIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	questID, err := strconv.Atoi(chi.URLParam(r, "questID"))
	if err != nil || questID <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidQuestID)
		return 0, false
	}
	return questID, true
}

// List returns the quest catalog with progress and level locks
func (h *QuestHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	difficulty := strings.ToLower(GetOptionalQueryParam(r, "difficulty", ""))
	if difficulty != "" && !ValidDifficulties[difficulty] {
		respondError(w, http.StatusBadRequest, "Invalid difficulty")
		return
	}

	listings, err := h.questSvc.List(r.Context(), userID, difficulty)
	if err != nil {
		respondServiceError(w, r, "List quests", err)
		return
	}

	respondJSON(w, http.StatusOK, listings)
}

// Get returns one quest prepared for play
func (h *QuestHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	questID, ok := questIDParam(w, r)
	if !ok {
		return
	}

	listing, err := h.questSvc.Get(r.Context(), userID, questID)
	if err != nil {
		respondServiceError(w, r, "Get quest", err)
		return
	}

	respondJSON(w, http.StatusOK, listing)
}

// Accept opens a quest for the character
func (h *QuestHandler) Accept(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	questID, ok := questIDParam(w, r)
	if !ok {
		return
	}

	accepted, err := h.questSvc.Accept(r.Context(), userID, questID)
	if err != nil {
		respondServiceError(w, r, "Accept quest", err)
		return
	}

	respondJSON(w, http.StatusOK, DataResponse{
		Message: MsgQuestAcceptedSuccess,
		Data:    accepted,
	})
}

// Submit grades a quest attempt
func (h *QuestHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	questID, ok := questIDParam(w, r)
	if !ok {
		return
	}

	var req SubmitQuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Submit quest"); err != nil {
		return
	}

	result, err := h.questSvc.Submit(r.Context(), userID, questID, req.Answers)
	if err != nil {
		respondServiceError(w, r, "Submit quest", err)
		return
	}

	message := MsgQuestFailed
	if result.Score.Passed {
		message = MsgQuestPassed
	}

	respondJSON(w, http.StatusOK, SubmitQuestResponse{
		Message:      message,
		SubmitResult: result,
	})
}
