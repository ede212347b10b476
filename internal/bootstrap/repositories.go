package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finquest/finquest/internal/database/postgres"
	"github.com/finquest/finquest/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	User        repository.User
	Character   repository.Character
	Quest       repository.Quest
	MiniGame    repository.MiniGame
	Achievement repository.Achievement
	Activity    repository.Activity
	Social      repository.Social
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:        postgres.NewUserRepository(dbPool),
		Character:   postgres.NewCharacterRepository(dbPool),
		Quest:       postgres.NewQuestRepository(dbPool),
		MiniGame:    postgres.NewMiniGameRepository(dbPool),
		Achievement: postgres.NewAchievementRepository(dbPool),
		Activity:    postgres.NewActivityRepository(dbPool),
		Social:      postgres.NewSocialRepository(dbPool),
	}
}
