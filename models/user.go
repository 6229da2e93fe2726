package models

import "time"

// User roles.
const (
	RoleUser        = "user"
	RoleFutsalOwner = "futsalOwner"
	RoleAdmin       = "admin"
)

// User represents a platform account (customer, futsal owner or admin).
type User struct {
	ID           string    `bson:"id" json:"id"`
	Username     string    `bson:"username" json:"username"`
	Email        string    `bson:"email" json:"email"`
	Password     string    `bson:"-" json:"password,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	PhoneNumber  string    `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`
	Role         string    `bson:"role" json:"role"`
	ProfileImage string    `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Favorites    []string  `bson:"favorites,omitempty" json:"favorites,omitempty"` // futsal ids
	TokenHash    string    `bson:"tokenHash,omitempty" json:"-"`
	RefreshHash  string    `bson:"refreshHash,omitempty" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
