package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type CancellationStatus string

const (
	CancellationStatusPending  CancellationStatus = "pendiente"
	CancellationStatusApproved CancellationStatus = "aprobada"
	CancellationStatusRejected CancellationStatus = "rechazada"
)

// 注文キャンセル申請。1注文につき最大1件
type CancellationRequest struct {
	ID      int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID int64              `gorm:"column:pedido_id;not null;uniqueIndex" json:"pedido_id"`
	Reason  string             `gorm:"column:motivo;type:text;not null" json:"motivo"`
	Status  CancellationStatus `gorm:"column:estado;type:varchar(50);not null;default:'pendiente'" json:"estado"`
	// 返金額は注文のtotalをそのまま引き継ぐ
	RefundAmount decimal.Decimal `gorm:"column:monto_reembolso;type:numeric(10,2);not null" json:"monto_reembolso"`
	RequestedAt  time.Time       `gorm:"column:fecha_solicitud;not null;autoCreateTime" json:"fecha_solicitud"`
	ProcessedAt  *time.Time      `gorm:"column:fecha_procesado" json:"fecha_procesado,omitempty"`
}

func (CancellationRequest) TableName() string { return "solicitudes_anulacion" }
