package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/finquest/finquest/internal/character"
	"github.com/finquest/finquest/internal/domain"
)

// CreateCharacterRequest represents the request to create a character
type CreateCharacterRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
}

// RenameCharacterRequest represents the request to rename a character
type RenameCharacterRequest struct {
	Name string `json:"name" validate:"required,min=2,max=30"`
}

// UpdateSnapshotRequest carries the player's simulated finances. All
// amounts except net worth must be non-negative; the service re-checks.
type UpdateSnapshotRequest struct {
	Income          decimal.Decimal `json:"income"`
	NetWorth        decimal.Decimal `json:"net_worth"`
	Debt            decimal.Decimal `json:"debt"`
	EmergencyFund   decimal.Decimal `json:"emergency_fund"`
	Investments     decimal.Decimal `json:"investments"`
	MonthlyExpenses decimal.Decimal `json:"monthly_expenses"`
	SavingsRate     decimal.Decimal `json:"savings_rate"`
	CreditScore     int             `json:"credit_score" validate:"gte=300,lte=850"`
}

// SnapshotResponse reports the updated character and any achievements the
// new finances unlocked.
type SnapshotResponse struct {
	Character *domain.Character    `json:"character"`
	Unlocked  []domain.Achievement `json:"unlocked_achievements,omitempty"`
}

// CharacterHandler handles character HTTP requests
type CharacterHandler struct {
	charSvc character.Service
}

// NewCharacterHandler creates a new character handler
func NewCharacterHandler(charSvc character.Service) *CharacterHandler {
	return &CharacterHandler{charSvc: charSvc}
}

// Create handles character creation
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateCharacterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create character"); err != nil {
		return
	}

	created, err := h.charSvc.Create(r.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(w, r, "Create character", err)
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// GetProfile returns the character sheet with derived fields
func (h *CharacterHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	profile, err := h.charSvc.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get profile", err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}

// Rename changes the character's display name
func (h *CharacterHandler) Rename(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req RenameCharacterRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Rename character"); err != nil {
		return
	}

	renamed, err := h.charSvc.Rename(r.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(w, r, "Rename character", err)
		return
	}

	respondJSON(w, http.StatusOK, renamed)
}

// UpdateSnapshot updates the character's financial snapshot and reports any
// achievements the change unlocked
func (h *CharacterHandler) UpdateSnapshot(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req UpdateSnapshotRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update snapshot"); err != nil {
		return
	}

	updated, unlocked, err := h.charSvc.UpdateSnapshot(r.Context(), userID, domain.FinancialSnapshot{
		Income:          req.Income,
		NetWorth:        req.NetWorth,
		Debt:            req.Debt,
		EmergencyFund:   req.EmergencyFund,
		Investments:     req.Investments,
		MonthlyExpenses: req.MonthlyExpenses,
		SavingsRate:     req.SavingsRate,
		CreditScore:     req.CreditScore,
	})
	if err != nil {
		respondServiceError(w, r, "Update snapshot", err)
		return
	}

	respondJSON(w, http.StatusOK, SnapshotResponse{
		Character: updated,
		Unlocked:  unlocked,
	})
}

// GetStats returns the detailed character stats view
func (h *CharacterHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.charSvc.GetStats(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, "Get stats", err)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}
