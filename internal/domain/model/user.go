package model

import "time"

type Role string

const (
	RoleCustomer Role = "cliente"
	RoleAdmin    Role = "administrador"
	RoleKitchen  Role = "cocinero"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Name         string `gorm:"type:varchar(255);not null" json:"nombre"`
	Phone        string `gorm:"type:varchar(20)" json:"telefono"`
	Address      string `gorm:"type:varchar(500)" json:"direccion"`
	PasswordHash string `gorm:"column:hashed_password;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(50);not null;default:'cliente'" json:"rol"`
	IsActive     bool   `gorm:"column:activo;not null;default:true" json:"activo"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"fecha_registro"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
