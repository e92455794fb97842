package database

import (
	"database/sql"
	"os"
	"strconv"
	"time"

	_ "github.com/lib/pq"
)

// DB pool Postgres partagé par le repository de snapshot et le seeder
var DB *sql.DB

const (
	defaultMaxOpenConns = 25
	defaultMaxIdleConns = 5
)

// Init ouvre le pool vers la base des tables sources (customers, orders,
// order_items, order_reviews). Les bornes du pool sont ajustables via
// DB_MAX_OPEN_CONNS et DB_MAX_IDLE_CONNS
func Init(connStr string) error {
	var err error
	DB, err = sql.Open("postgres", connStr)
	if err != nil {
		return err
	}

	maxOpen, maxIdle := poolSettings()
	DB.SetMaxOpenConns(maxOpen)
	DB.SetMaxIdleConns(maxIdle)
	DB.SetConnMaxLifetime(5 * time.Minute)

	return DB.Ping()
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// poolSettings lit les bornes du pool depuis l'environnement
// La borne idle est plafonnée à la borne open
func poolSettings() (maxOpen, maxIdle int) {
	maxOpen = envInt("DB_MAX_OPEN_CONNS", defaultMaxOpenConns)
	maxIdle = envInt("DB_MAX_IDLE_CONNS", defaultMaxIdleConns)
	if maxIdle > maxOpen {
		maxIdle = maxOpen
	}
	return maxOpen, maxIdle
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
