package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pendiente"
	RefundStatusProcessed RefundStatus = "procesado"
	RefundStatusCompleted RefundStatus = "completado"
	RefundStatusFailed    RefundStatus = "fallido"
)

// キャンセル承認時に精算される返金レコード。申請と1:1
type Refund struct {
	ID             int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	CancellationID int64           `gorm:"column:anulacion_id;not null;uniqueIndex" json:"anulacion_id"`
	Amount         decimal.Decimal `gorm:"column:monto;type:numeric(10,2);not null" json:"monto"`
	PaymentMethod  string          `gorm:"column:metodo_pago;type:varchar(50);not null" json:"metodo_pago"`
	Status         RefundStatus    `gorm:"column:estado;type:varchar(50);not null;default:'pendiente'" json:"estado"`
	TransactionID  string          `gorm:"column:transaccion_id;type:varchar(255)" json:"transaccion_id,omitempty"`
	ProcessedAt    time.Time       `gorm:"column:fecha_proceso;not null;autoCreateTime" json:"fecha_proceso"`
}

func (Refund) TableName() string { return "reembolsos" }
