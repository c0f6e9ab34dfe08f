package model

import "github.com/shopspring/decimal"

// カートの明細。
// 単価（商品＋サイズ＋エキストラ）は追加時点で確定して保存する
type CartItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64  `gorm:"not null;index" json:"-"`
	ProductID int64  `gorm:"not null;index" json:"producto_id"`
	SizeID    *int64 `gorm:"column:tamanio_id" json:"tamanio_id,omitempty"`
	Quantity  int64  `gorm:"not null;default:1" json:"cantidad"`
	// 追加時点の単価スナップショット
	UnitPrice decimal.Decimal `gorm:"column:precio_unitario;type:numeric(10,2);not null" json:"precio_unitario"`
	Notes     string          `gorm:"type:text" json:"notas,omitempty"`

	Extras []Extra `gorm:"many2many:carrito_item_extras" json:"extras"`
}
