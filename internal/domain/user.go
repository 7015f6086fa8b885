package domain

import (
	"context"
	"time"

	"printshop-api/internal/policy"
)

type User struct {
	ID           string      `gorm:"primaryKey;size:36" json:"id"`
	FirstName    string      `gorm:"size:64;not null" json:"firstName"`
	LastName     string      `gorm:"size:64;not null" json:"lastName"`
	Email        string      `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string      `gorm:"size:100;not null" json:"-"`
	Phone        string      `gorm:"size:32" json:"phone"`
	Role         policy.Role `gorm:"size:16;not null;default:USER" json:"role"`
	Banned       bool        `gorm:"not null;default:false" json:"banned"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (u *User) Actor() policy.Actor { return policy.Actor{ID: u.ID, Role: u.Role} }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, offset, limit int) ([]User, int64, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id string) error
}
