package database

import (
	"context"
	"errors"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// DB defines the store operations used by handlers and middleware.
type DB interface {
	// Users
	CreateUser(ctx context.Context, user User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id string) (int64, error)
	PromoteUser(ctx context.Context, id string) (int64, error)

	// Menu
	ListMenu(ctx context.Context) ([]MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*MenuItem, error)
	CreateMenuItem(ctx context.Context, item MenuItem) (string, error)
	UpdateMenuItem(ctx context.Context, id string, item MenuItem) (int64, error)
	DeleteMenuItem(ctx context.Context, id string) (int64, error)

	// Reviews
	ListReviews(ctx context.Context) ([]Review, error)
	CreateReview(ctx context.Context, review Review) (string, error)

	// Carts
	ListCartItems(ctx context.Context, email string) ([]CartItem, error)
	AddCartItem(ctx context.Context, item CartItem) (string, error)
	DeleteCartItem(ctx context.Context, id string) (int64, error)

	// Utility
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
