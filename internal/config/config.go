package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// Configはアプリ全体の設定
type Config struct {
	Port string `envconfig:"PORT" default:"8080"` // サーバーポート

	// DATABASE_URL があれば最優先で使う
	DatabaseURL      string `envconfig:"DATABASE_URL"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"postgres"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"postgres"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"app"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET"` // JWT署名シークレット

	GoEnv string `envconfig:"GO_ENV" default:"dev"` // dev/prod

	// メール送信（SMTP）
	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	EmailFrom    string `envconfig:"EMAIL_FROM" default:"no-reply@lafornace.cl"`

	// 店舗の座標（配達圏の原点）。単一店舗前提
	PizzeriaLat float64 `envconfig:"PIZZERIA_LAT" default:"-33.4489"`
	PizzeriaLon float64 `envconfig:"PIZZERIA_LON" default:"-70.6693"`

	// 配達圏の半径（km）
	CoverageRadiusKM float64 `envconfig:"RADIO_COBERTURA_KM" default:"15"`

	// ETA = 調理ベース分 + 距離km × 分/km
	ETABaseMinutes  int `envconfig:"ETA_BASE_MINUTES" default:"25"`
	ETAMinutesPerKM int `envconfig:"ETA_MINUTES_PER_KM" default:"3"`

	// 送料（固定）と税率
	ShippingFee decimal.Decimal `envconfig:"COSTO_ENVIO" default:"2000"`
	TaxRate     decimal.Decimal `envconfig:"IVA" default:"0.19"`

	// 注文確定からキャンセル可能な時間（分）
	CancelWindowMinutes int `envconfig:"VENTANA_ANULACION_MIN" default:"10"`
}

// Loadは環境変数から設定を組み立てる
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CoverageRadiusKM <= 0 {
		return Config{}, fmt.Errorf("RADIO_COBERTURA_KM must be > 0")
	}

	return cfg, nil
}
