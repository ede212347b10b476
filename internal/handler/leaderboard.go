package handler

import (
	"net/http"
	"strings"

	"github.com/finquest/finquest/internal/domain"
	"github.com/finquest/finquest/internal/leaderboard"
)

// HandleGetLeaderboard serves a ranked board for the requested metric.
// The metric defaults to level.
func HandleGetLeaderboard(boardSvc leaderboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUserID(w, r)
		if !ok {
			return
		}

		metric := domain.LeaderboardMetric(strings.ToLower(
			GetOptionalQueryParam(r, "metric", string(domain.LeaderboardByLevel))))

		board, err := boardSvc.GetBoard(r.Context(), userID, metric)
		if err != nil {
			respondServiceError(w, r, "Get leaderboard", err)
			return
		}

		respondJSON(w, http.StatusOK, board)
	}
}
