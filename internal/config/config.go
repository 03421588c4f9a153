package config

import (
	"fmt"
	"os"
	"strconv"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（既定8080）
	GoEnv string // dev/prod
	FEURL string // フロントURL（CORSで使う）

	// 空ならインメモリストアで動く。設定するとGORM(Postgres)に切り替わる。
	DatabaseURL string

	// 低在庫アラートの閾値。adjustが起動時に一度だけ読む。
	LowStockThreshold int

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string
	EmailTo      string

	// 起動時にサンプルデータを流し込むか（インメモリ時のみ意味がある）。
	SeedSampleData bool
}

// Loadは環境変数から読む。必須はなく、未設定はすべて既定値。
func Load() (Config, error) {
	threshold, err := intEnv("LOW_STOCK_THRESHOLD", 5)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),
		FEURL: os.Getenv("FE_URL"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		LowStockThreshold: threshold,

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenv("SMTP_PORT", "587"),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		EmailFrom:    os.Getenv("EMAIL_FROM"),
		EmailTo:      os.Getenv("EMAIL_TO"),

		SeedSampleData: os.Getenv("SEED_SAMPLE_DATA") == "true",
	}
	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
