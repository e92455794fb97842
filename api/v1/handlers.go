package v1

import (
	"encoding/json"
	"log"
	"net/http"

	"segmetrics/api/dto"
	exportapp "segmetrics/internal/export/application"
	metricsapp "segmetrics/internal/metrics/application"
	"segmetrics/internal/metrics/domain"
	metricsinfra "segmetrics/internal/metrics/infrastructure"
)

// Handlers contient tous les handlers pour l'API V1 (séquentielle)
type Handlers struct {
	snapshotRepo  *metricsinfra.SnapshotQueryRepository
	aggregation   *metricsapp.AggregationServiceV1
	cohorts       *metricsapp.CohortService
	exportService *exportapp.ExportService
}

// NewHandlers crée une nouvelle instance des handlers V1
func NewHandlers(
	snapshotRepo *metricsinfra.SnapshotQueryRepository,
	aggregation *metricsapp.AggregationServiceV1,
	cohorts *metricsapp.CohortService,
	exportService *exportapp.ExportService,
) *Handlers {
	return &Handlers{
		snapshotRepo:  snapshotRepo,
		aggregation:   aggregation,
		cohorts:       cohorts,
		exportService: exportService,
	}
}

// GetMetrics handler pour GET /api/v1/metrics
func (h *Handlers) GetMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := h.aggregate(r)
	if err != nil {
		log.Printf("Error computing metrics (V1): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.ResultToJSON(result))
}

// GetCohorts handler pour GET /api/v1/cohorts
func (h *Handlers) GetCohorts(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshotRepo.WithContext(r.Context()).Load()
	if err != nil {
		log.Printf("Error loading snapshot (V1): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	rows, err := h.cohorts.Retention(snapshot)
	if err != nil {
		log.Printf("Error computing cohorts (V1): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CohortsToJSON(rows))
}

// ExportCSV handler pour GET /api/v1/export/csv
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	result, err := h.aggregate(r)
	if err != nil {
		log.Printf("Error exporting CSV (V1): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	csvData, err := h.exportService.ExportMetricsToCSV(result)
	if err != nil {
		log.Printf("Error exporting CSV (V1): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=customer_metrics_v1.csv")
	w.Write(csvData)
}

func (h *Handlers) aggregate(r *http.Request) (*domain.AggregationResult, error) {
	snapshot, err := h.snapshotRepo.WithContext(r.Context()).Load()
	if err != nil {
		return nil, err
	}
	return h.aggregation.Aggregate(snapshot)
}
