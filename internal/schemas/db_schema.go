// Package schemas defines the data structures shared between handlers,
// managers and the wire format.
package schemas

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table. The same shape is serialized
// into the session cache, so json tags double as the cache format.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
	Verified       bool      `json:"verified"`
	AvatarPublicID string    `json:"avatarPublicId,omitempty"`
	AvatarURL      string    `json:"avatarUrl,omitempty"`
}

// PendingUser is a registration that has not been activated yet. It is never
// persisted; its only store is the signed activation ticket.
type PendingUser struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	AvatarPublicID string `json:"avatarPublicId,omitempty"`
	AvatarURL      string `json:"avatarUrl,omitempty"`
}

// Product represents a row in the products table.
type Product struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	CategoryID    uuid.UUID `json:"categoryId"`
	Price         float64   `json:"price"`
	Description   string    `json:"description"`
	Rating        float64   `json:"rating"`
	Stock         int       `json:"stock"`
	PhotoPublicID string    `json:"photoPublicId"`
	PhotoURL      string    `json:"photoUrl"`
	SearchName    string    `json:"searchName"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ProductCategory represents a row in the prod_category table.
type ProductCategory struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	PhotoPublicID string    `json:"photoPublicId"`
	PhotoURL      string    `json:"photoUrl"`
}

// Order represents a row in the orders table. Products and PaymentInfo are
// stored as JSON documents, mirroring what the storefront submitted.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	Status      string          `json:"status"`
	UserID      uuid.UUID       `json:"userId"`
	TotalPrice  float64         `json:"totalPrice"`
	Products    json.RawMessage `json:"products"`
	PaymentInfo json.RawMessage `json:"paymentInfo"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Comment represents a row in the comments table.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	ProductID uuid.UUID `json:"productId"`
	Content   string    `json:"content"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

// Notification represents a row in the notifications table.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// FAQ represents a row in the faq table.
type FAQ struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"userId"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
}
