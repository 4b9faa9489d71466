package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
)

// ResolveRole: el rol es una búsqueda estática por email, solo la dirección
// configurada como ADMIN_EMAIL obtiene el rol admin
func ResolveRole(email, adminEmail string) UserRole {
	if email == adminEmail {
		return RoleAdmin
	}
	return RoleEditor
}

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:20;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
