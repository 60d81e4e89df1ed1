package store

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/BicEv/MovieRatings/internal/domain"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email or username already exists")
)

// UserStore defines the persistence operations for users.
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUserName(ctx context.Context, userName string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, userID string) error
}

// MockUserStore is an in-memory UserStore used in tests.
type MockUserStore struct {
	mu    sync.RWMutex
	users map[string]*domain.User // key: userID
}

func NewMockUserStore() *MockUserStore {
	return &MockUserStore{users: make(map[string]*domain.User)}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, user.Email) || strings.EqualFold(existing.UserName, user.UserName) {
			return ErrUserAlreadyExists
		}
	}

	userCopy := *user
	userCopy.CreatedAt = time.Now().UTC()
	userCopy.UpdatedAt = userCopy.CreatedAt
	m.users[user.ID] = &userCopy
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, userID string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if user, ok := m.users[userID]; ok {
		userCopy := *user
		return &userCopy, nil
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if strings.EqualFold(user.Email, email) {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStore) GetByUserName(ctx context.Context, userName string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if strings.EqualFold(user.UserName, userName) {
			userCopy := *user
			return &userCopy, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.users[user.ID]
	if !ok {
		return ErrUserNotFound
	}
	for id, other := range m.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(other.Email, user.Email) || strings.EqualFold(other.UserName, user.UserName) {
			return ErrUserAlreadyExists
		}
	}

	updated := *user
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	m.users[user.ID] = &updated
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userID]; !ok {
		return ErrUserNotFound
	}
	delete(m.users, userID)
	return nil
}
