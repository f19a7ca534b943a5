package repotest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/repository/specification"

	"github.com/google/uuid"
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type userRepository struct {
	store *Store
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return fmt.Errorf("duplicate key value violates unique constraint \"idx_users_email\"")
		}
	}
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	user.CreatedAt = s.tick()
	user.UpdatedAt = user.CreatedAt
	s.users[user.Id] = *user
	return nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	user.UpdatedAt = s.tick()
	s.users[user.Id] = *user
	return nil
}

func (r *userRepository) match(q query, u entity.User) bool {
	return (q.id == nil || *q.id == u.Id) && (q.email == nil || *q.email == u.Email)
}

func (r *userRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	q := parse(specs)
	for _, u := range s.users {
		if r.match(q, u) {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

type chatRepository struct {
	store *Store
}

func (r *chatRepository) Create(ctx context.Context, chat *entity.Chat) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if chat.Id == uuid.Nil {
		chat.Id = uuid.New()
	}
	if chat.Messages == nil {
		chat.Messages = []entity.ChatMessage{}
	}
	chat.CreatedAt = s.tick()
	updated := chat.CreatedAt
	chat.UpdatedAt = &updated
	s.chats[chat.Id] = cloneChat(*chat)
	return nil
}

func (r *chatRepository) Update(ctx context.Context, chat *entity.Chat) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if _, ok := s.chats[chat.Id]; !ok {
		return fmt.Errorf("chat %s does not exist", chat.Id)
	}
	updated := s.tick()
	chat.UpdatedAt = &updated
	s.chats[chat.Id] = cloneChat(*chat)
	return nil
}

func (r *chatRepository) Delete(ctx context.Context, id uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	delete(s.chats, id)
	return nil
}

func (r *chatRepository) find(specs []specification.Specification) []*entity.Chat {
	q := parse(specs)
	var out []*entity.Chat
	for _, c := range r.store.chats {
		if q.id != nil && *q.id != c.Id {
			continue
		}
		if q.userID != nil && *q.userID != c.UserId {
			continue
		}
		found := cloneChat(c)
		out = append(out, &found)
	}
	byCreated(out, func(c *entity.Chat) time.Time { return c.CreatedAt }, q.desc)
	return out
}

func (r *chatRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Chat, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	found := r.find(specs)
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *chatRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Chat, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	return r.find(specs), nil
}

type quizAttemptRepository struct {
	store *Store
}

func (r *quizAttemptRepository) Create(ctx context.Context, attempt *entity.QuizAttempt) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWrites != nil {
		return s.FailWrites
	}
	if attempt.Id == uuid.Nil {
		attempt.Id = uuid.New()
	}
	attempt.CreatedAt = s.tick()
	s.attempts = append(s.attempts, *attempt)
	return nil
}

func (r *quizAttemptRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.QuizAttempt, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailReads != nil {
		return nil, s.FailReads
	}
	q := parse(specs)
	var out []*entity.QuizAttempt
	for _, a := range s.attempts {
		if q.userID != nil && *q.userID != a.UserId {
			continue
		}
		found := a
		out = append(out, &found)
	}
	byCreated(out, func(a *entity.QuizAttempt) time.Time { return a.CreatedAt }, q.desc)
	return out, nil
}
