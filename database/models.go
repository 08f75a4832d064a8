package database

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// RoleAdmin is the privileged role. Any other value (including empty)
// is an ordinary user.
const RoleAdmin = "admin"

// User represents a user account.
// The email is the unique key; at most one record exists per email.
type User struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email     string        `bson:"email" json:"email"`
	Name      string        `bson:"name,omitempty" json:"name,omitempty"`
	Role      string        `bson:"role,omitempty" json:"role,omitempty"`
	CreatedAt time.Time     `bson:"created_at,omitempty" json:"created_at,omitempty"`
}

// MenuItem represents a dish on the menu.
type MenuItem struct {
	ID       bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name     string        `bson:"name" json:"name"`
	Recipe   string        `bson:"recipe,omitempty" json:"recipe,omitempty"`
	Image    string        `bson:"image,omitempty" json:"image,omitempty"`
	Category string        `bson:"category,omitempty" json:"category,omitempty"`
	Price    float64       `bson:"price" json:"price"`
}

// Review represents a customer testimonial.
type Review struct {
	ID      bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name    string        `bson:"name" json:"name"`
	Details string        `bson:"details" json:"details"`
	Rating  float64       `bson:"rating" json:"rating"`
}

// CartItem represents a menu item placed in a user's cart.
// It carries the owning user's email; no referential integrity is
// enforced against the users or menu collections.
type CartItem struct {
	ID     bson.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email  string        `bson:"email" json:"email"`
	MenuID string        `bson:"menu_id,omitempty" json:"menu_id,omitempty"`
	Name   string        `bson:"name,omitempty" json:"name,omitempty"`
	Image  string        `bson:"image,omitempty" json:"image,omitempty"`
	Price  float64       `bson:"price,omitempty" json:"price,omitempty"`
}
