package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	MetricsAddr     string // server sampingan untuk /metrics dan /health
	DatabaseDSN     string
	CORSOrigins     string
	ReserveOnCreate bool // true: stok gudang langsung dipotong saat barang keluar dibuat
}

func Load() *Config {
	// .env opsional, hanya untuk development lokal
	if err := godotenv.Load(); err == nil {
		log.Println("File .env dimuat")
	}

	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MetricsAddr:     getEnv("METRICS_ADDR", ":9091"),
		DatabaseDSN:     getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=esteh port=5432 sslmode=disable"),
		CORSOrigins:     getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		ReserveOnCreate: getEnv("STOCK_RESERVE_ON_CREATE", "false") == "true",
	}

	if cfg.DatabaseDSN == "host=localhost user=postgres password=postgres dbname=esteh port=5432 sslmode=disable" {
		log.Println("[WARN] DATABASE_DSN memakai nilai default, untuk production wajib diisi sendiri.")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Println("[WARN] CORS_ALLOWED_ORIGINS memakai nilai default, untuk production wajib diisi domain sendiri.")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
