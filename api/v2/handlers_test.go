package v2

import (
	"net/http"
	"net/http/httptest"
	"testing"

	exportdomain "segmetrics/internal/export/domain"
)

func TestExportJobFromQuery(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		format     exportdomain.ExportFormat
		exportType exportdomain.ExportType
		wantErr    bool
	}{
		{"défauts", "", exportdomain.ExportFormatCSV, exportdomain.ExportTypeMetrics, false},
		{"métriques csv", "format=csv&type=metrics", exportdomain.ExportFormatCSV, exportdomain.ExportTypeMetrics, false},
		{"cohortes parquet", "format=parquet&type=cohorts", exportdomain.ExportFormatParquet, exportdomain.ExportTypeCohorts, false},
		{"casse ignorée", "format=Parquet&type=Cohorts", exportdomain.ExportFormatParquet, exportdomain.ExportTypeCohorts, false},
		{"format inconnu", "format=xml", "", "", true},
		{"type inconnu", "type=inventory", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v2/export?"+tt.query, nil)

			job, err := exportJobFromQuery(r)
			if tt.wantErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if job.Format() != tt.format || job.ExportType() != tt.exportType {
				t.Errorf("job = (%q, %q), want (%q, %q)",
					job.Format(), job.ExportType(), tt.format, tt.exportType)
			}
		})
	}
}

// Un paramètre invalide doit être rejeté en 400 avant tout accès à la base
func TestExport_RejectsInvalidQuery(t *testing.T) {
	h := NewHandlers(nil, nil, nil, nil)

	for _, query := range []string{"format=xml", "type=inventory", "format=xml&type=inventory"} {
		r := httptest.NewRequest(http.MethodGet, "/api/v2/export?"+query, nil)
		w := httptest.NewRecorder()

		h.Export(w, r)

		if w.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want %d", query, w.Code, http.StatusBadRequest)
		}
	}
}
