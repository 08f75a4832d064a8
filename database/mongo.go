package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Ensure Mongo satisfies the DB interface at compile time.
var _ DB = (*Mongo)(nil)

// Mongo implements the DB interface backed by MongoDB.
type Mongo struct {
	client  *mongo.Client
	users   *mongo.Collection
	menu    *mongo.Collection
	reviews *mongo.Collection
	carts   *mongo.Collection
}

// NewMongo connects to MongoDB and returns a ready store.
// The client is created once at startup and shared by all requests.
func NewMongo(ctx context.Context, uri, name string) (*Mongo, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := client.Database(name)
	return &Mongo{
		client:  client,
		users:   db.Collection("users"),
		menu:    db.Collection("menu"),
		reviews: db.Collection("reviews"),
		carts:   db.Collection("carts"),
	}, nil
}

// CreateUser inserts a user unless one with the same email already exists.
// The uniqueness check is find-then-insert; the store level carries no
// uniqueness constraint.
func (m *Mongo) CreateUser(ctx context.Context, user User) (string, error) {
	err := m.users.FindOne(ctx, bson.M{"email": user.Email}).Err()
	if err == nil {
		return "", ErrAlreadyExists
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	user.ID = bson.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	if _, err := m.users.InsertOne(ctx, user); err != nil {
		return "", fmt.Errorf("failed to insert user: %w", err)
	}
	return user.ID.Hex(), nil
}

// GetUserByEmail fetches a user by email.
func (m *Mongo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := m.users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// ListUsers returns all user records.
func (m *Mongo) ListUsers(ctx context.Context) ([]User, error) {
	cur, err := m.users.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	var users []User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// DeleteUser deletes a user by id and returns the deleted count.
func (m *Mongo) DeleteUser(ctx context.Context, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.users.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete user: %w", err)
	}
	return res.DeletedCount, nil
}

// PromoteUser sets the user's role to admin and returns the modified count.
func (m *Mongo) PromoteUser(ctx context.Context, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": RoleAdmin}})
	if err != nil {
		return 0, fmt.Errorf("failed to promote user: %w", err)
	}
	return res.ModifiedCount, nil
}

// ListMenu returns all menu items.
func (m *Mongo) ListMenu(ctx context.Context) ([]MenuItem, error) {
	cur, err := m.menu.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list menu: %w", err)
	}
	var items []MenuItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode menu items: %w", err)
	}
	return items, nil
}

// GetMenuItem fetches a menu item by id.
func (m *Mongo) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var item MenuItem
	if err := m.menu.FindOne(ctx, bson.M{"_id": oid}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}

// CreateMenuItem inserts a menu item.
func (m *Mongo) CreateMenuItem(ctx context.Context, item MenuItem) (string, error) {
	item.ID = bson.NewObjectID()
	if _, err := m.menu.InsertOne(ctx, item); err != nil {
		return "", fmt.Errorf("failed to insert menu item: %w", err)
	}
	return item.ID.Hex(), nil
}

// UpdateMenuItem replaces the mutable fields of a menu item.
func (m *Mongo) UpdateMenuItem(ctx context.Context, id string, item MenuItem) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	update := bson.M{"$set": bson.M{
		"name":     item.Name,
		"recipe":   item.Recipe,
		"image":    item.Image,
		"category": item.Category,
		"price":    item.Price,
	}}
	res, err := m.menu.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return 0, fmt.Errorf("failed to update menu item: %w", err)
	}
	return res.ModifiedCount, nil
}

// DeleteMenuItem deletes a menu item by id.
func (m *Mongo) DeleteMenuItem(ctx context.Context, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.menu.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete menu item: %w", err)
	}
	return res.DeletedCount, nil
}

// ListReviews returns all reviews.
func (m *Mongo) ListReviews(ctx context.Context) ([]Review, error) {
	cur, err := m.reviews.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	var reviews []Review
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview inserts a review.
func (m *Mongo) CreateReview(ctx context.Context, review Review) (string, error) {
	review.ID = bson.NewObjectID()
	if _, err := m.reviews.InsertOne(ctx, review); err != nil {
		return "", fmt.Errorf("failed to insert review: %w", err)
	}
	return review.ID.Hex(), nil
}

// ListCartItems returns the cart items owned by the given email.
func (m *Mongo) ListCartItems(ctx context.Context, email string) ([]CartItem, error) {
	cur, err := m.carts.Find(ctx, bson.M{"email": email})
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	var items []CartItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart items: %w", err)
	}
	return items, nil
}

// AddCartItem inserts a cart item.
func (m *Mongo) AddCartItem(ctx context.Context, item CartItem) (string, error) {
	item.ID = bson.NewObjectID()
	if _, err := m.carts.InsertOne(ctx, item); err != nil {
		return "", fmt.Errorf("failed to insert cart item: %w", err)
	}
	return item.ID.Hex(), nil
}

// DeleteCartItem deletes a cart item by id.
func (m *Mongo) DeleteCartItem(ctx context.Context, id string) (int64, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return 0, nil
	}
	res, err := m.carts.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, fmt.Errorf("failed to delete cart item: %w", err)
	}
	return res.DeletedCount, nil
}

// Ping verifies the connection to the database.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close disconnects the client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
