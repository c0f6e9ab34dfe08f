package model

type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"nombre"`
	Description string `gorm:"type:varchar(500)" json:"descripcion"`
	IsActive    bool   `gorm:"column:activo;not null;default:true" json:"activo"`
}
