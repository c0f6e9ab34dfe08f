package model

import "time"

// 確認メールの送信記録。注文と1:1で、再送は同じ行を更新する
type EmailConfirmation struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64      `gorm:"column:pedido_id;not null;uniqueIndex" json:"pedido_id"`
	To        string     `gorm:"column:email_destino;type:varchar(255);not null" json:"email_destino"`
	Subject   string     `gorm:"column:asunto;type:varchar(500);not null" json:"asunto"`
	Sent      bool       `gorm:"column:enviado;not null;default:false" json:"enviado"`
	SentAt    *time.Time `gorm:"column:fecha_envio" json:"fecha_envio,omitempty"`
	Retries   int        `gorm:"column:reintentos;not null;default:0" json:"reintentos"`
	LastError string     `gorm:"column:error_mensaje;type:text" json:"error_mensaje,omitempty"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"-"`
}

func (EmailConfirmation) TableName() string { return "emails_confirmacion" }
