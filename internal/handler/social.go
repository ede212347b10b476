package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finquest/finquest/internal/social"
)

// AddFriendRequest names the user to befriend.
type AddFriendRequest struct {
	Username string `json:"username" validate:"required,max=30"`
}

// SocialHandler handles friend graph HTTP requests
type SocialHandler struct {
	socialSvc social.Service
}

// NewSocialHandler creates a new social handler
func NewSocialHandler(socialSvc social.Service) *SocialHandler {
	return &SocialHandler{socialSvc: socialSvc}
}

func friendshipIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "friendshipID"))
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestID)
		return 0, false
	}
	return id, true
}

// ListFriends returns accepted friends with character summaries
func (h *SocialHandler) ListFriends(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	friends, err := h.socialSvc.ListFriends(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List friends", err)
		return
	}

	respondJSON(w, http.StatusOK, friends)
}

// ListRequests returns pending friend requests awaiting this user
func (h *SocialHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	requests, err := h.socialSvc.ListPendingRequests(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "List friend requests", err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// AddFriend sends a friend request by username
func (h *SocialHandler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AddFriendRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Add friend"); err != nil {
		return
	}

	if _, err := h.socialSvc.SendRequest(r.Context(), userID, req.Username); err != nil {
		respondServiceError(w, r, "Add friend", err)
		return
	}

	respondJSON(w, http.StatusCreated, SuccessResponse{
		Message: fmt.Sprintf(MsgFriendRequestSent, req.Username),
	})
}

// AcceptFriend accepts a pending friend request
func (h *SocialHandler) AcceptFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	friendshipID, ok := friendshipIDParam(w, r)
	if !ok {
		return
	}

	if err := h.socialSvc.AcceptRequest(r.Context(), userID, friendshipID); err != nil {
		respondServiceError(w, r, "Accept friend", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFriendRequestOK})
}

// RemoveFriend deletes a friendship or declines a pending request
func (h *SocialHandler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	friendshipID, ok := friendshipIDParam(w, r)
	if !ok {
		return
	}

	if err := h.socialSvc.RemoveFriend(r.Context(), userID, friendshipID); err != nil {
		respondServiceError(w, r, "Remove friend", err)
		return
	}

	respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgFriendRemoved})
}

// SearchUsers finds users to befriend
func (h *SocialHandler) SearchUsers(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	query, ok := GetQueryParam(r, w, "q")
	if !ok {
		return
	}

	results, err := h.socialSvc.SearchUsers(r.Context(), userID, query)
	if err != nil {
		respondServiceError(w, r, "Search users", err)
		return
	}

	respondJSON(w, http.StatusOK, results)
}

// Compare builds a head-to-head stat sheet against another user's character
func (h *SocialHandler) Compare(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	friendUserID := chi.URLParam(r, "userID")
	if friendUserID == "" {
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestID)
		return
	}

	comparison, err := h.socialSvc.Compare(r.Context(), userID, friendUserID)
	if err != nil {
		respondServiceError(w, r, "Compare characters", err)
		return
	}

	respondJSON(w, http.StatusOK, comparison)
}
