package model

import "time"

type PrintJobStatus string

const (
	PrintJobStatusPending PrintJobStatus = "pendiente"
	PrintJobStatusPrinted PrintJobStatus = "impreso"
	PrintJobStatusError   PrintJobStatus = "error"
)

// キッチン向け印刷キューの1行。注文と1:1で、確定時に作られる
type PrintJob struct {
	ID         int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64          `gorm:"column:pedido_id;not null;uniqueIndex" json:"pedido_id"`
	Status     PrintJobStatus `gorm:"column:estado;type:varchar(50);not null;default:'pendiente'" json:"estado"`
	EnqueuedAt time.Time      `gorm:"column:fecha_envio_cocina;not null;autoCreateTime" json:"fecha_envio_cocina"`
	PrintedAt  *time.Time     `gorm:"column:fecha_impresion" json:"fecha_impresion,omitempty"`
	Retries    int            `gorm:"column:reintentos;not null;default:0" json:"reintentos"`
}

func (PrintJob) TableName() string { return "cola_impresion" }
