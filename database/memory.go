package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Ensure Memory satisfies the DB interface at compile time.
var _ DB = (*Memory)(nil)

// Memory implements the DB interface with in-process maps. It is selected
// by `database.type: memory` and backs the test suite; it keeps the same
// semantics as the Mongo store, including the per-email uniqueness check.
type Memory struct {
	mu sync.RWMutex

	users         map[string]User
	userIDByEmail map[string]string
	menu          map[string]MenuItem
	reviews       map[string]Review
	carts         map[string]CartItem
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:         make(map[string]User),
		userIDByEmail: make(map[string]string),
		menu:          make(map[string]MenuItem),
		reviews:       make(map[string]Review),
		carts:         make(map[string]CartItem),
	}
}

func (m *Memory) CreateUser(_ context.Context, user User) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.userIDByEmail[user.Email]; ok {
		return "", ErrAlreadyExists
	}

	user.ID = bson.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	id := user.ID.Hex()
	m.users[id] = user
	m.userIDByEmail[user.Email] = id
	return id, nil
}

func (m *Memory) GetUserByEmail(_ context.Context, email string) (*User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.userIDByEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	user := m.users[id]
	return &user, nil
}

func (m *Memory) ListUsers(_ context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID.Hex() < users[j].ID.Hex() })
	return users, nil
}

func (m *Memory) DeleteUser(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	delete(m.users, id)
	delete(m.userIDByEmail, user.Email)
	return 1, nil
}

func (m *Memory) PromoteUser(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return 0, nil
	}
	if user.Role == RoleAdmin {
		return 0, nil
	}
	user.Role = RoleAdmin
	m.users[id] = user
	return 1, nil
}

func (m *Memory) ListMenu(_ context.Context) ([]MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]MenuItem, 0, len(m.menu))
	for _, item := range m.menu {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID.Hex() < items[j].ID.Hex() })
	return items, nil
}

func (m *Memory) GetMenuItem(_ context.Context, id string) (*MenuItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.menu[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &item, nil
}

func (m *Memory) CreateMenuItem(_ context.Context, item MenuItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = bson.NewObjectID()
	id := item.ID.Hex()
	m.menu[id] = item
	return id, nil
}

func (m *Memory) UpdateMenuItem(_ context.Context, id string, item MenuItem) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.menu[id]
	if !ok {
		return 0, nil
	}
	existing.Name = item.Name
	existing.Recipe = item.Recipe
	existing.Image = item.Image
	existing.Category = item.Category
	existing.Price = item.Price
	m.menu[id] = existing
	return 1, nil
}

func (m *Memory) DeleteMenuItem(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.menu[id]; !ok {
		return 0, nil
	}
	delete(m.menu, id)
	return 1, nil
}

func (m *Memory) ListReviews(_ context.Context) ([]Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reviews := make([]Review, 0, len(m.reviews))
	for _, r := range m.reviews {
		reviews = append(reviews, r)
	}
	sort.Slice(reviews, func(i, j int) bool { return reviews[i].ID.Hex() < reviews[j].ID.Hex() })
	return reviews, nil
}

func (m *Memory) CreateReview(_ context.Context, review Review) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	review.ID = bson.NewObjectID()
	id := review.ID.Hex()
	m.reviews[id] = review
	return id, nil
}

func (m *Memory) ListCartItems(_ context.Context, email string) ([]CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := make([]CartItem, 0)
	for _, item := range m.carts {
		if item.Email == email {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID.Hex() < items[j].ID.Hex() })
	return items, nil
}

func (m *Memory) AddCartItem(_ context.Context, item CartItem) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item.ID = bson.NewObjectID()
	id := item.ID.Hex()
	m.carts[id] = item
	return id, nil
}

func (m *Memory) DeleteCartItem(_ context.Context, id string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.carts[id]; !ok {
		return 0, nil
	}
	delete(m.carts, id)
	return 1, nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }

func (m *Memory) Close(_ context.Context) error { return nil }
