package application

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"segmetrics/internal/export/domain"
	metricsdomain "segmetrics/internal/metrics/domain"
)

// ExportService génère les exports CSV et Parquet en mémoire
// Aucune écriture disque: les octets retournés partent directement
// dans la réponse HTTP
type ExportService struct {
	batchSize int
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService() *ExportService {
	return &ExportService{
		batchSize: 1000,
	}
}

// ExportMetricsToCSV exporte la table des métriques client en CSV
func (s *ExportService) ExportMetricsToCSV(result *metricsdomain.AggregationResult) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 1024*1024)) // 1 MB initial
	w := csv.NewWriter(buf)

	if err := w.Write(domain.MetricCSVHeaders()); err != nil {
		return nil, err
	}

	for i, cm := range result.Metrics() {
		if err := w.Write(domain.NewMetricExportRow(cm).ToCSVRow()); err != nil {
			return nil, err
		}

		// Flush périodique pour limiter le buffer interne du writer
		if (i+1)%s.batchSize == 0 {
			w.Flush()
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportCohortsToCSV exporte la table de rétention par cohorte en CSV
func (s *ExportService) ExportCohortsToCSV(rows []*metricsdomain.CohortRow) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, 64*1024)) // 64 KB
	w := csv.NewWriter(buf)

	if err := w.Write(domain.CohortCSVHeaders()); err != nil {
		return nil, err
	}

	for _, row := range rows {
		if err := w.Write(domain.NewCohortExportRow(row).ToCSVRow()); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ExportMetricsToParquet exporte la table des métriques client en Parquet
func (s *ExportService) ExportMetricsToParquet(result *metricsdomain.AggregationResult) ([]byte, error) {
	fw := buffer.NewBufferFile()

	pw, err := writer.NewParquetWriter(fw, new(domain.CustomerMetricParquet), 4)
	if err != nil {
		return nil, fmt.Errorf("parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, cm := range result.Metrics() {
		record := domain.NewMetricExportRow(cm).ToParquetRecord()
		if err := pw.Write(record); err != nil {
			return nil, fmt.Errorf("parquet write: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("parquet finalize: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}

	return fw.Bytes(), nil
}

// ExportCohortsToParquet exporte la table de rétention par cohorte en Parquet
func (s *ExportService) ExportCohortsToParquet(rows []*metricsdomain.CohortRow) ([]byte, error) {
	fw := buffer.NewBufferFile()

	pw, err := writer.NewParquetWriter(fw, new(domain.CohortRetentionParquet), 4)
	if err != nil {
		return nil, fmt.Errorf("parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, row := range rows {
		record := domain.NewCohortExportRow(row).ToParquetRecord()
		if err := pw.Write(record); err != nil {
			return nil, fmt.Errorf("parquet write: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("parquet finalize: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}

	return fw.Bytes(), nil
}
