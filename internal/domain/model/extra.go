package model

import "github.com/shopspring/decimal"

// 追加トッピング。1個ごとに単価へ加算される
type Extra struct {
	ID        int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string          `gorm:"type:varchar(100);not null" json:"nombre"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"precio"`
	Available bool            `gorm:"column:disponible;not null;default:true" json:"disponible"`
	IsActive  bool            `gorm:"column:activo;not null;default:true" json:"activo"`
}
