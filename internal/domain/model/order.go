package model

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusConfirmed OrderStatus = "confirmado"
	OrderStatusPreparing OrderStatus = "preparando"
	OrderStatusShipped   OrderStatus = "enviado"
	OrderStatusDelivered OrderStatus = "entregado"
	OrderStatusCancelled OrderStatus = "cancelado"
)

// 注文明細のスナップショット（確定時点の値）。
// 以後の商品マスタ変更に影響されない
type OrderItemSnapshot struct {
	ProductID int64           `json:"producto_id"`
	Name      string          `json:"nombre"`
	Quantity  int64           `json:"cantidad"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
	Notes     string          `json:"notas,omitempty"`
}

type OrderSnapshot struct {
	Items []OrderItemSnapshot `json:"items"`
}

// 確定済み注文。estado以外は作成後に変更しない
type Order struct {
	ID     int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64       `gorm:"not null;index" json:"user_id"`
	Status OrderStatus `gorm:"column:estado;type:varchar(50);not null;index;default:'pendiente'" json:"estado"`

	// total = subtotal + costo_envio + impuestos - descuento
	Subtotal    decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"subtotal"`
	ShippingFee decimal.Decimal `gorm:"column:costo_envio;type:numeric(10,2);not null;default:0" json:"costo_envio"`
	Taxes       decimal.Decimal `gorm:"column:impuestos;type:numeric(10,2);not null;default:0" json:"impuestos"`
	Discount    decimal.Decimal `gorm:"column:descuento;type:numeric(10,2);not null;default:0" json:"descuento"`
	Total       decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`

	// 配達先
	Address      string           `gorm:"column:direccion;type:varchar(500);not null" json:"direccion"`
	Phone        string           `gorm:"column:telefono;type:varchar(20);not null" json:"telefono"`
	Instructions string           `gorm:"column:instrucciones_especiales;type:text" json:"instrucciones_especiales,omitempty"`
	Latitude     *decimal.Decimal `gorm:"column:latitud;type:numeric(10,7)" json:"latitud,omitempty"`
	Longitude    *decimal.Decimal `gorm:"column:longitud;type:numeric(10,7)" json:"longitud,omitempty"`
	ETAMinutes   *int             `gorm:"column:eta_minutos" json:"eta_minutos,omitempty"`

	// 確定時点の明細スナップショット（JSON値。商品行とは再結合しない）
	ItemsJSON     string `gorm:"column:items_json;type:jsonb;not null" json:"-"`
	PaymentMethod string `gorm:"column:metodo_pago;type:varchar(50)" json:"metodo_pago,omitempty"`
	TransactionID string `gorm:"column:transaccion_id;type:varchar(255)" json:"transaccion_id,omitempty"`

	CreatedAt time.Time `gorm:"column:fecha;not null;autoCreateTime;index" json:"fecha"`
	UpdatedAt time.Time `gorm:"column:fecha_actualizacion;not null;autoUpdateTime" json:"-"`
}

// items_jsonをデコードする
func (o Order) Snapshot() (OrderSnapshot, error) {
	var s OrderSnapshot
	if err := json.Unmarshal([]byte(o.ItemsJSON), &s); err != nil {
		return OrderSnapshot{}, err
	}
	return s, nil
}
