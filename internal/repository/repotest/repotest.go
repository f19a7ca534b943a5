// Package repotest is an in-memory unit of work for service and pipeline tests.
// Specifications are interpreted by type; unknown ones panic so a test cannot
// silently ignore a filter.
package repotest

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ai-learning-assistant-be/internal/entity"
	"ai-learning-assistant-be/internal/repository/contract"
	"ai-learning-assistant-be/internal/repository/specification"
	"ai-learning-assistant-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// Store holds every table. Zero value is not usable; call NewStore.
type Store struct {
	mu       sync.Mutex
	users    map[uuid.UUID]entity.User
	chats    map[uuid.UUID]entity.Chat
	attempts []entity.QuizAttempt
	clock    time.Time

	// FailWrites makes every write return this error.
	FailWrites error
	// FailReads makes every read return this error.
	FailReads error

	Begins    int
	Commits   int
	Rollbacks int
}

func NewStore() *Store {
	return &Store{
		users: map[uuid.UUID]entity.User{},
		chats: map[uuid.UUID]entity.Chat{},
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so ordering by created_at is
// deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *Store) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: s}
}

var _ unitofwork.RepositoryFactory = (*Store)(nil)

// Chat returns a copy of a stored chat.
func (s *Store) Chat(id uuid.UUID) (entity.Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chats[id]
	return cloneChat(c), ok
}

func (s *Store) User(id uuid.UUID) (entity.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *Store) Attempts() []entity.QuizAttempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.QuizAttempt(nil), s.attempts...)
}

// PutChat stores chat as is, assigning an id and timestamps when missing.
func (s *Store) PutChat(chat entity.Chat) entity.Chat {
	s.mu.Lock()
	defer s.mu.Unlock()
	if chat.Id == uuid.Nil {
		chat.Id = uuid.New()
	}
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = s.tick()
	}
	if chat.Messages == nil {
		chat.Messages = []entity.ChatMessage{}
	}
	s.chats[chat.Id] = cloneChat(chat)
	return chat
}

func (s *Store) PutUser(user entity.User) entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.Id == uuid.Nil {
		user.Id = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = s.tick()
	}
	s.users[user.Id] = user
	return user
}

type unitOfWork struct {
	store *Store
	inTx  bool
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.inTx {
		return fmt.Errorf("transaction already started")
	}
	u.store.mu.Lock()
	u.store.Begins++
	u.store.mu.Unlock()
	u.inTx = true
	return nil
}

func (u *unitOfWork) Commit() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	u.store.mu.Lock()
	u.store.Commits++
	u.store.mu.Unlock()
	u.inTx = false
	return nil
}

func (u *unitOfWork) Rollback() error {
	if !u.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.store.mu.Lock()
	u.store.Rollbacks++
	u.store.mu.Unlock()
	u.inTx = false
	return nil
}

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return &userRepository{store: u.store}
}

func (u *unitOfWork) ChatRepository() contract.ChatRepository {
	return &chatRepository{store: u.store}
}

func (u *unitOfWork) QuizAttemptRepository() contract.QuizAttemptRepository {
	return &quizAttemptRepository{store: u.store}
}

func cloneChat(c entity.Chat) entity.Chat {
	c.Messages = append([]entity.ChatMessage{}, c.Messages...)
	return c
}

// query is the in-memory reading of a specification list.
type query struct {
	id     *uuid.UUID
	userID *uuid.UUID
	email  *string
	desc   bool
}

func parse(specs []specification.Specification) query {
	var q query
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			id := s.ID
			q.id = &id
		case specification.UserOwnedBy:
			id := s.UserID
			q.userID = &id
		case specification.ByEmail:
			email := normalizeEmail(s.Email)
			q.email = &email
		case specification.NewestFirst:
			q.desc = true
		case specification.OrderBy:
			if s.Field != "created_at" {
				panic(fmt.Sprintf("repotest: unsupported order field %q", s.Field))
			}
			q.desc = s.Desc
		case specification.ForUpdate:
		default:
			panic(fmt.Sprintf("repotest: unsupported specification %T", spec))
		}
	}
	return q
}

func byCreated[T any](items []T, created func(T) time.Time, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return created(items[i]).After(created(items[j]))
		}
		return created(items[i]).Before(created(items[j]))
	})
}
