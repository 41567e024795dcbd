package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config параметры процесса, читаются из .env и переменных окружения
type Config struct {
	// Addr адрес HTTP-сервера
	Addr string
	// JWTSecret ключ подписи токенов
	JWTSecret string
	// DatabaseDSN строка подключения Postgres; пустая — in-memory бэкенд
	DatabaseDSN string
	// Seed заполнять ли пустое хранилище демо-данными
	Seed bool
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}
	return Config{
		Addr:        getEnv("ADDR", ":9091"),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		Seed:        getEnv("SEED", "true") == "true",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
