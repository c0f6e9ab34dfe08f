package model

import "time"

// 1ユーザーにつきカートは1つ（初回アクセス時に作成）
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"fecha_creacion"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"-"`
}
