package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品。注文できるのは activo && disponible && stock > 0 のときだけ
type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"nombre"`
	Description string          `gorm:"type:text" json:"descripcion"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio"`
	ImageURL    string          `gorm:"type:varchar(500)" json:"image_url"`
	CategoryID  int64           `gorm:"not null;index" json:"categoria_id"`
	// stockが0になったらfalseに落とす
	Available bool      `gorm:"column:disponible;not null;default:true" json:"disponible"`
	Stock     int64     `gorm:"not null;default:0" json:"stock"`
	IsActive  bool      `gorm:"column:activo;not null;default:true" json:"activo"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}

// 注文・カート投入が可能か
func (p Product) Purchasable() bool {
	return p.IsActive && p.Available && p.Stock > 0
}
