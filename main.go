package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/joho/godotenv"

	apiv1 "segmetrics/api/v1"
	apiv2 "segmetrics/api/v2"
	"segmetrics/database"
	exportapp "segmetrics/internal/export/application"
	metricsapp "segmetrics/internal/metrics/application"
	metricsinfra "segmetrics/internal/metrics/infrastructure"
	sharedinfra "segmetrics/internal/shared/infrastructure"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Attention: fichier .env non trouvé, utilisation des valeurs par défaut")
	}

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "segmetrics"),
		getEnv("DB_PASSWORD", "segmetrics"),
		getEnv("DB_NAME", "segmetrics"),
		getEnv("DB_SSLMODE", "disable"),
	)

	if err := database.Init(connStr); err != nil {
		log.Fatal("❌ Erreur connexion DB:", err)
	}
	defer database.Close()

	snapshotRepo := metricsinfra.NewSnapshotQueryRepository(database.DB)
	cohortService := metricsapp.NewCohortService()
	exportService := exportapp.NewExportService()

	// V1: agrégation séquentielle de référence
	v1Handlers := apiv1.NewHandlers(
		snapshotRepo,
		metricsapp.NewAggregationServiceV1(),
		cohortService,
		exportService,
	)

	// V2: cache TTL shardé + partitionnement par client
	v2Handlers := apiv2.NewHandlers(
		snapshotRepo,
		metricsapp.NewAggregationServiceV2(sharedinfra.NewShardedCache(16), 4),
		cohortService,
		exportService,
	)

	// Health check
	http.HandleFunc("/api/health", healthHandler)

	// API V1 - séquentielle
	http.HandleFunc("/api/v1/metrics", v1Handlers.GetMetrics)
	http.HandleFunc("/api/v1/cohorts", v1Handlers.GetCohorts)
	http.HandleFunc("/api/v1/export/csv", v1Handlers.ExportCSV)

	// API V2 - cache + partitionnement
	http.HandleFunc("/api/v2/metrics", v2Handlers.GetMetrics)
	http.HandleFunc("/api/v2/cohorts", v2Handlers.GetCohorts)
	http.HandleFunc("/api/v2/export", v2Handlers.Export)
	http.HandleFunc("/api/v2/export/csv", v2Handlers.ExportCSV)
	http.HandleFunc("/api/v2/export/cohorts-csv", v2Handlers.ExportCohortsCSV)
	http.HandleFunc("/api/v2/export/parquet", v2Handlers.ExportParquet)
	http.HandleFunc("/api/v2/cache/clear", v2Handlers.ClearCache)

	log.Println("Serveur démarré sur :8080")
	log.Fatal(http.ListenAndServe(":8080", nil))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"message": "API v1 (séquentielle) et v2 (cache + partitionnement) disponibles",
	})
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
