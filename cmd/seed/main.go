package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"segmetrics/database"

	"github.com/joho/godotenv"
)

func main() {
	// Charge .env
	err := godotenv.Load()
	if err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	// Connexion PostgreSQL
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "segmetrics"),
		getEnv("DB_PASSWORD", "segmetrics"),
		getEnv("DB_NAME", "segmetrics"),
		getEnv("DB_SSLMODE", "disable"),
	)

	err = database.Init(connStr)
	if err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer database.Close()

	fmt.Println("✅ Connexion PostgreSQL établie")

	customers, _ := strconv.Atoi(getEnv("SEED_CUSTOMERS", "1000"))
	years, _ := strconv.Atoi(getEnv("SEED_YEARS", "2"))

	fmt.Println("🌱 Démarrage du seed de la base de données...")
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	err = database.SeedDatabase(customers, years)
	if err != nil {
		log.Fatal("❌ Erreur lors du seed:", err)
	}

	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Println("✅ Seed terminé avec succès!")
	fmt.Println()
	fmt.Println("Vous pouvez maintenant démarrer l'application avec:")
	fmt.Println("  go run main.go")
	fmt.Println()
	fmt.Println("Et tester les endpoints:")
	fmt.Println("  V1: http://localhost:8080/api/v1/metrics")
	fmt.Println("  V2: http://localhost:8080/api/v2/metrics")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
