package domain

import (
	"errors"
	"fmt"
	"time"

	metricsdomain "segmetrics/internal/metrics/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "CSV"
	ExportFormatParquet ExportFormat = "Parquet"
)

// ExportType représente le type d'export
type ExportType string

const (
	ExportTypeMetrics ExportType = "metrics"
	ExportTypeCohorts ExportType = "cohorts"
)

// ExportJob représente un job d'export
type ExportJob struct {
	format     ExportFormat
	exportType ExportType
	createdAt  time.Time
}

// NewExportJob crée un nouveau job d'export avec validation
func NewExportJob(format ExportFormat, exportType ExportType) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, errors.New("invalid export format")
	}
	if exportType != ExportTypeMetrics && exportType != ExportTypeCohorts {
		return nil, errors.New("invalid export type")
	}

	return &ExportJob{
		format:     format,
		exportType: exportType,
		createdAt:  time.Now(),
	}, nil
}

// Format retourne le format d'export
func (ej *ExportJob) Format() ExportFormat {
	return ej.format
}

// ExportType retourne le type d'export
func (ej *ExportJob) ExportType() ExportType {
	return ej.exportType
}

// CreatedAt retourne la date de création
func (ej *ExportJob) CreatedAt() time.Time {
	return ej.createdAt
}

// Extension retourne l'extension de fichier du format
func (ej *ExportJob) Extension() string {
	if ej.format == ExportFormatParquet {
		return "parquet"
	}
	return "csv"
}

// ContentType retourne le type MIME de la réponse HTTP
func (ej *ExportJob) ContentType() string {
	if ej.format == ExportFormatParquet {
		return "application/octet-stream"
	}
	return "text/csv"
}

// BaseName retourne le nom de fichier sans extension
func (ej *ExportJob) BaseName() string {
	if ej.exportType == ExportTypeCohorts {
		return "cohort_retention"
	}
	return "customer_metrics"
}

// dateLayout format des dates dans les exports CSV
const dateLayout = "2006-01-02"

// MetricExportRow représente une ligne d'export de métriques client
type MetricExportRow struct {
	CustomerID        string
	TotalOrders       int
	TotalSpent        float64
	AvgOrderValue     float64
	FirstOrderDate    time.Time
	LastOrderDate     time.Time
	LifespanDays      int
	AvgReviewScore    *float64
	Segment           string
	SatisfactionLevel string
}

// NewMetricExportRow construit une ligne d'export depuis une ligne de métriques
func NewMetricExportRow(cm *metricsdomain.CustomerMetrics) *MetricExportRow {
	return &MetricExportRow{
		CustomerID:        string(cm.CustomerID()),
		TotalOrders:       cm.TotalOrders(),
		TotalSpent:        cm.TotalSpent().Amount(),
		AvgOrderValue:     cm.AvgOrderValue().Amount(),
		FirstOrderDate:    cm.FirstOrderDate(),
		LastOrderDate:     cm.LastOrderDate(),
		LifespanDays:      cm.LifespanDays(),
		AvgReviewScore:    cm.AvgReviewScore().ValueOrNil(),
		Segment:           string(cm.Segment()),
		SatisfactionLevel: string(cm.Satisfaction()),
	}
}

// ToCSVRow convertit en tableau pour CSV
// Un score d'avis indéfini produit une cellule vide, jamais "0"
func (mer *MetricExportRow) ToCSVRow() []string {
	score := ""
	if mer.AvgReviewScore != nil {
		score = fmt.Sprintf("%.2f", *mer.AvgReviewScore)
	}

	return []string{
		mer.CustomerID,
		fmt.Sprintf("%d", mer.TotalOrders),
		fmt.Sprintf("%.2f", mer.TotalSpent),
		fmt.Sprintf("%.2f", mer.AvgOrderValue),
		mer.FirstOrderDate.Format(dateLayout),
		mer.LastOrderDate.Format(dateLayout),
		fmt.Sprintf("%d", mer.LifespanDays),
		score,
		mer.Segment,
		mer.SatisfactionLevel,
	}
}

// MetricCSVHeaders retourne les en-têtes CSV des métriques client
func MetricCSVHeaders() []string {
	return []string{
		"customer_id",
		"total_orders",
		"total_spent",
		"avg_order_value",
		"first_order_date",
		"last_order_date",
		"lifespan_days",
		"avg_review_score",
		"segment",
		"satisfaction_level",
	}
}

// CohortExportRow représente une ligne d'export de rétention
type CohortExportRow struct {
	CohortMonth     time.Time
	ActivityMonth   time.Time
	CohortSize      int
	ActiveCustomers int
	RetentionRate   float64
}

// NewCohortExportRow construit une ligne d'export depuis une ligne de cohorte
func NewCohortExportRow(row *metricsdomain.CohortRow) *CohortExportRow {
	return &CohortExportRow{
		CohortMonth:     row.CohortMonth(),
		ActivityMonth:   row.ActivityMonth(),
		CohortSize:      row.CohortSize(),
		ActiveCustomers: row.ActiveCustomers(),
		RetentionRate:   row.RetentionRate(),
	}
}

// ToCSVRow convertit en tableau pour CSV
func (cer *CohortExportRow) ToCSVRow() []string {
	return []string{
		cer.CohortMonth.Format("2006-01"),
		cer.ActivityMonth.Format("2006-01"),
		fmt.Sprintf("%d", cer.CohortSize),
		fmt.Sprintf("%d", cer.ActiveCustomers),
		fmt.Sprintf("%.2f", cer.RetentionRate),
	}
}

// CohortCSVHeaders retourne les en-têtes CSV de la rétention
func CohortCSVHeaders() []string {
	return []string{
		"cohort_month",
		"activity_month",
		"cohort_size",
		"active_customers",
		"retention_rate",
	}
}

// CustomerMetricParquet schéma Parquet de la table des métriques client
// avg_review_score est OPTIONAL: l'absence d'avis est un null, pas un zéro
type CustomerMetricParquet struct {
	CustomerID        string   `parquet:"name=customer_id, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	TotalOrders       int32    `parquet:"name=total_orders, type=INT32"`
	TotalSpent        float64  `parquet:"name=total_spent, type=DOUBLE"`
	AvgOrderValue     float64  `parquet:"name=avg_order_value, type=DOUBLE"`
	FirstOrderDate    int64    `parquet:"name=first_order_date, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	LastOrderDate     int64    `parquet:"name=last_order_date, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	LifespanDays      int32    `parquet:"name=lifespan_days, type=INT32"`
	AvgReviewScore    *float64 `parquet:"name=avg_review_score, type=DOUBLE, repetitiontype=OPTIONAL"`
	Segment           string   `parquet:"name=segment, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	SatisfactionLevel string   `parquet:"name=satisfaction_level, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
}

// CohortRetentionParquet schéma Parquet de la table de rétention
type CohortRetentionParquet struct {
	CohortMonth     int64   `parquet:"name=cohort_month, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	ActivityMonth   int64   `parquet:"name=activity_month, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	CohortSize      int32   `parquet:"name=cohort_size, type=INT32"`
	ActiveCustomers int32   `parquet:"name=active_customers, type=INT32"`
	RetentionRate   float64 `parquet:"name=retention_rate, type=DOUBLE"`
}

// ToParquetRecord convertit une ligne de rétention vers le schéma Parquet
func (cer *CohortExportRow) ToParquetRecord() *CohortRetentionParquet {
	return &CohortRetentionParquet{
		CohortMonth:     cer.CohortMonth.UnixMilli(),
		ActivityMonth:   cer.ActivityMonth.UnixMilli(),
		CohortSize:      int32(cer.CohortSize),
		ActiveCustomers: int32(cer.ActiveCustomers),
		RetentionRate:   cer.RetentionRate,
	}
}

// ToParquetRecord convertit une ligne d'export vers le schéma Parquet
func (mer *MetricExportRow) ToParquetRecord() *CustomerMetricParquet {
	return &CustomerMetricParquet{
		CustomerID:        mer.CustomerID,
		TotalOrders:       int32(mer.TotalOrders),
		TotalSpent:        mer.TotalSpent,
		AvgOrderValue:     mer.AvgOrderValue,
		FirstOrderDate:    mer.FirstOrderDate.UnixMilli(),
		LastOrderDate:     mer.LastOrderDate.UnixMilli(),
		LifespanDays:      int32(mer.LifespanDays),
		AvgReviewScore:    mer.AvgReviewScore,
		Segment:           mer.Segment,
		SatisfactionLevel: mer.SatisfactionLevel,
	}
}
