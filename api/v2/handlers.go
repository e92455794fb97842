package v2

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"segmetrics/api/dto"
	exportapp "segmetrics/internal/export/application"
	exportdomain "segmetrics/internal/export/domain"
	metricsapp "segmetrics/internal/metrics/application"
	"segmetrics/internal/metrics/domain"
	metricsinfra "segmetrics/internal/metrics/infrastructure"
)

// Handlers contient tous les handlers pour l'API V2 (cache + partitionnement)
type Handlers struct {
	snapshotRepo  *metricsinfra.SnapshotQueryRepository
	aggregation   *metricsapp.AggregationServiceV2
	cohorts       *metricsapp.CohortService
	exportService *exportapp.ExportService
}

// NewHandlers crée une nouvelle instance des handlers V2
func NewHandlers(
	snapshotRepo *metricsinfra.SnapshotQueryRepository,
	aggregation *metricsapp.AggregationServiceV2,
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

// GetMetrics handler pour GET /api/v2/metrics
func (h *Handlers) GetMetrics(w http.ResponseWriter, r *http.Request) {
	result, err := h.aggregate(r)
	if err != nil {
		log.Printf("Error computing metrics (V2): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.ResultToJSON(result))
}

// GetCohorts handler pour GET /api/v2/cohorts
func (h *Handlers) GetCohorts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.retention(r)
	if err != nil {
		log.Printf("Error computing cohorts (V2): %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dto.CohortsToJSON(rows))
}

// Export handler pour GET /api/v2/export?format=csv|parquet&type=metrics|cohorts
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	job, err := exportJobFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.serveExport(w, r, job)
}

// ExportCSV handler pour GET /api/v2/export/csv
func (h *Handlers) ExportCSV(w http.ResponseWriter, r *http.Request) {
	h.fixedExport(w, r, exportdomain.ExportFormatCSV, exportdomain.ExportTypeMetrics)
}

// ExportCohortsCSV handler pour GET /api/v2/export/cohorts-csv
func (h *Handlers) ExportCohortsCSV(w http.ResponseWriter, r *http.Request) {
	h.fixedExport(w, r, exportdomain.ExportFormatCSV, exportdomain.ExportTypeCohorts)
}

// ExportParquet handler pour GET /api/v2/export/parquet
func (h *Handlers) ExportParquet(w http.ResponseWriter, r *http.Request) {
	h.fixedExport(w, r, exportdomain.ExportFormatParquet, exportdomain.ExportTypeMetrics)
}

// ClearCache handler pour POST /api/v2/cache/clear
func (h *Handlers) ClearCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.aggregation.ClearCache()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "cache cleared"})
}

func (h *Handlers) fixedExport(w http.ResponseWriter, r *http.Request, format exportdomain.ExportFormat, exportType exportdomain.ExportType) {
	job, err := exportdomain.NewExportJob(format, exportType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.serveExport(w, r, job)
}

// serveExport agrège puis sérialise selon le job validé
func (h *Handlers) serveExport(w http.ResponseWriter, r *http.Request, job *exportdomain.ExportJob) {
	var data []byte
	var err error

	switch job.ExportType() {
	case exportdomain.ExportTypeCohorts:
		var rows []*domain.CohortRow
		if rows, err = h.retention(r); err == nil {
			if job.Format() == exportdomain.ExportFormatParquet {
				data, err = h.exportService.ExportCohortsToParquet(rows)
			} else {
				data, err = h.exportService.ExportCohortsToCSV(rows)
			}
		}
	default:
		var result *domain.AggregationResult
		if result, err = h.aggregate(r); err == nil {
			if job.Format() == exportdomain.ExportFormatParquet {
				data, err = h.exportService.ExportMetricsToParquet(result)
			} else {
				data, err = h.exportService.ExportMetricsToCSV(result)
			}
		}
	}

	if err != nil {
		log.Printf("Error exporting %s/%s (V2): %v", job.ExportType(), job.Format(), err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", job.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s_v2.%s", job.BaseName(), job.Extension()))
	w.Write(data)
}

// exportJobFromQuery construit un job d'export depuis les paramètres de
// requête; la validation est portée par NewExportJob
func exportJobFromQuery(r *http.Request) (*exportdomain.ExportJob, error) {
	format := exportdomain.ExportFormatCSV
	switch raw := strings.ToLower(r.URL.Query().Get("format")); raw {
	case "", "csv":
	case "parquet":
		format = exportdomain.ExportFormatParquet
	default:
		format = exportdomain.ExportFormat(raw)
	}

	exportType := exportdomain.ExportTypeMetrics
	switch raw := strings.ToLower(r.URL.Query().Get("type")); raw {
	case "", "metrics":
	case "cohorts":
		exportType = exportdomain.ExportTypeCohorts
	default:
		exportType = exportdomain.ExportType(raw)
	}

	return exportdomain.NewExportJob(format, exportType)
}

// aggregate charge le snapshot et agrège avec le cache versionné:
// tant que la table des commandes ne change pas, la version reste stable
// et le résultat sort du cache
func (h *Handlers) aggregate(r *http.Request) (*domain.AggregationResult, error) {
	repo := h.snapshotRepo.WithContext(r.Context())

	version, err := repo.Version()
	if err != nil {
		return nil, err
	}

	snapshot, err := repo.Load()
	if err != nil {
		return nil, err
	}

	return h.aggregation.Aggregate(version, snapshot)
}

func (h *Handlers) retention(r *http.Request) ([]*domain.CohortRow, error) {
	snapshot, err := h.snapshotRepo.WithContext(r.Context()).Load()
	if err != nil {
		return nil, err
	}
	return h.cohorts.Retention(snapshot)
}
