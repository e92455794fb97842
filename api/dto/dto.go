// Package dto porte la représentation JSON des agrégations, partagée par
// les handlers v1 et v2: les deux versions exposent le même contrat de sortie
package dto

import (
	"segmetrics/internal/metrics/domain"
)

// CustomerMetricsDTO représentation JSON d'une ligne de métriques client
type CustomerMetricsDTO struct {
	CustomerID        string   `json:"customer_id"`
	TotalOrders       int      `json:"total_orders"`
	TotalSpent        float64  `json:"total_spent"`
	AvgOrderValue     float64  `json:"avg_order_value"`
	FirstOrderDate    string   `json:"first_order_date"`
	LastOrderDate     string   `json:"last_order_date"`
	LifespanDays      int      `json:"lifespan_days"`
	AvgReviewScore    *float64 `json:"avg_review_score"`
	Segment           string   `json:"segment"`
	SatisfactionLevel string   `json:"satisfaction_level"`
}

// CohortRowDTO représentation JSON d'une ligne de rétention
type CohortRowDTO struct {
	CohortMonth     string  `json:"cohort_month"`
	ActivityMonth   string  `json:"activity_month"`
	CohortSize      int     `json:"cohort_size"`
	ActiveCustomers int     `json:"active_customers"`
	RetentionRate   float64 `json:"retention_rate"`
}

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

// MetricsToDTO convertit les lignes du domaine vers leur forme JSON
// Un score d'avis indéfini sérialise en null, jamais en 0
func MetricsToDTO(metrics []*domain.CustomerMetrics) []CustomerMetricsDTO {
	dtos := make([]CustomerMetricsDTO, 0, len(metrics))
	for _, cm := range metrics {
		dtos = append(dtos, CustomerMetricsDTO{
			CustomerID:        string(cm.CustomerID()),
			TotalOrders:       cm.TotalOrders(),
			TotalSpent:        cm.TotalSpent().Amount(),
			AvgOrderValue:     cm.AvgOrderValue().Amount(),
			FirstOrderDate:    cm.FirstOrderDate().Format(dateLayout),
			LastOrderDate:     cm.LastOrderDate().Format(dateLayout),
			LifespanDays:      cm.LifespanDays(),
			AvgReviewScore:    cm.AvgReviewScore().ValueOrNil(),
			Segment:           string(cm.Segment()),
			SatisfactionLevel: string(cm.Satisfaction()),
		})
	}
	return dtos
}

// ResultToJSON construit l'enveloppe de réponse des métriques
func ResultToJSON(result *domain.AggregationResult) map[string]interface{} {
	return map[string]interface{}{
		"count":         result.Count(),
		"discrepancies": result.Discrepancies(),
		"metrics":       MetricsToDTO(result.Metrics()),
	}
}

// CohortsToJSON construit l'enveloppe de réponse de la rétention
func CohortsToJSON(rows []*domain.CohortRow) map[string]interface{} {
	dtos := make([]CohortRowDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, CohortRowDTO{
			CohortMonth:     row.CohortMonth().Format(monthLayout),
			ActivityMonth:   row.ActivityMonth().Format(monthLayout),
			CohortSize:      row.CohortSize(),
			ActiveCustomers: row.ActiveCustomers(),
			RetentionRate:   row.RetentionRate(),
		})
	}
	return map[string]interface{}{
		"count":   len(dtos),
		"cohorts": dtos,
	}
}
