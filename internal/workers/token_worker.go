package workers

import (
	"time"

	"voxshop_backend/internal/logger"
	"voxshop_backend/internal/repositories"

	"gorm.io/gorm"
)

const tokenCleanInterval = time.Hour

// TokenWorker deletes expired refresh tokens.
type TokenWorker struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	stop     chan struct{}
}

func NewTokenWorker(db *gorm.DB) *TokenWorker {
	return &TokenWorker{
		db:       db,
		userRepo: repositories.NewUserRepository(),
		stop:     make(chan struct{}),
	}
}

func (w *TokenWorker) Start() {
	go w.run()
}

func (w *TokenWorker) Stop() {
	close(w.stop)
}

func (w *TokenWorker) run() {
	ticker := time.NewTicker(tokenCleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			err := w.userRepo.CleanExpiredRefreshTokens(w.db)
			logger.WorkerLog("tokens", "clean", err)
		case <-w.stop:
			return
		}
	}
}
