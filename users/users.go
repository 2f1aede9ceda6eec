package users

import (
	"time"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Email        string    `bun:"email,notnull,unique" json:"email,omitempty"`
	Name         string    `bun:"name,notnull" json:"name,omitempty"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"` // Never serialize
	CreatedAt    time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
}

type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:pr"`

	ID     int64  `bun:"id,pk,autoincrement" json:"id,omitempty"`
	Bio    string `bun:"bio,notnull" json:"bio,omitempty"`
	UserID int64  `bun:"user_id,notnull,unique" json:"user_id,omitempty"`
}

// HashPassword hashes a plaintext password with bcrypt at the given cost
func HashPassword(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// CheckPasswordHash checks a plaintext password against a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
