package model

import "github.com/shopspring/decimal"

// ピザのサイズ（Personal / Mediana / Familiar）
type Size struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string          `gorm:"type:varchar(50);not null" json:"nombre"`
	PriceSurcharge decimal.Decimal `gorm:"column:precio_adicional;type:numeric(10,2);not null;default:0" json:"precio_adicional"`
	IsActive       bool            `gorm:"column:activo;not null;default:true" json:"activo"`
}

func (Size) TableName() string { return "tamanios" }
