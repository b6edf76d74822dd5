package models

import (
	"time"

	"github.com/estatebooks/backend/internal/domain/identity"
)

// UserModel is the GORM model for back-office user accounts
type UserModel struct {
	AggregateModel
	Username       string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	DisplayName    string     `gorm:"type:varchar(200)"`
	Email          string     `gorm:"type:varchar(200);index"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"`
	Role           string     `gorm:"type:varchar(30);not null;index"`
	Status         string     `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
	LastLoginAt    *time.Time `gorm:""`
	LastLoginIP    string     `gorm:"type:varchar(45)"`
	FailedAttempts int        `gorm:"not null;default:0"`
	LockedUntil    *time.Time `gorm:""`
}

// TableName specifies the table name
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	u := &identity.User{
		Username:       m.Username,
		DisplayName:    m.DisplayName,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Role:           identity.Role(m.Role),
		Status:         identity.UserStatus(m.Status),
		LastLoginAt:    m.LastLoginAt,
		LastLoginIP:    m.LastLoginIP,
		FailedAttempts: m.FailedAttempts,
		LockedUntil:    m.LockedUntil,
	}
	m.PopulateAggregateRoot(&u.BaseAggregateRoot)
	return u
}

// FromDomain populates the model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Username = u.Username
	m.DisplayName = u.DisplayName
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.Role = u.Role.String()
	m.Status = string(u.Status)
	m.LastLoginAt = u.LastLoginAt
	m.LastLoginIP = u.LastLoginIP
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
}

// UserModelFromDomain creates a model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}
