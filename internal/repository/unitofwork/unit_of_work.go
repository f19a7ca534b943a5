package unitofwork

import (
	"context"

	"ai-learning-assistant-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	ChatRepository() contract.ChatRepository
	QuizAttemptRepository() contract.QuizAttemptRepository
}
