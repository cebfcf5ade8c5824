package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleCashier = "cashier"
	RoleManager = "manager"
	RoleAdmin   = "admin"
)

// Staff is an employee who can unlock the register with a PIN.
// The PIN is stored bcrypt-hashed, never in plaintext.
type Staff struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Role      string    `gorm:"type:varchar(20);not null;default:'cashier'"`
	PinHash   string    `gorm:"not null"`
	Active    bool      `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Staff) TableName() string { return "staff" }
