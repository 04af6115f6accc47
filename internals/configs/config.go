package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret         string
	NotifyWebhookURL  string
	ReportRendererURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	NotifyWebhookURL = GetEnv("NOTIFY_WEBHOOK_URL")
	ReportRendererURL = GetEnv("REPORT_RENDERER_URL")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}

	// Kolaborator eksternal bersifat opsional saat dev; cukup warning.
	if NotifyWebhookURL == "" {
		log.Println("⚠️ NOTIFY_WEBHOOK_URL belum diset, alert hanya dicatat di outbox")
	}
	if ReportRendererURL == "" {
		log.Println("⚠️ REPORT_RENDERER_URL belum diset, export laporan akan gagal")
	}
}

func GetEnv(key string) string {
	return os.Getenv(key)
}

func GetEnvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
