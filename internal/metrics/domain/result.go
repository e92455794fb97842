package domain

// AggregationResult représente la sortie complète d'une exécution:
// la table CustomerMetrics et le rapport des références écartées
type AggregationResult struct {
	metrics       []*CustomerMetrics
	discrepancies DiscrepancyReport
}

// NewAggregationResult crée un résultat d'agrégation
func NewAggregationResult(metrics []*CustomerMetrics, discrepancies DiscrepancyReport) *AggregationResult {
	if metrics == nil {
		metrics = make([]*CustomerMetrics, 0)
	}
	return &AggregationResult{
		metrics:       metrics,
		discrepancies: discrepancies,
	}
}

// Metrics retourne les lignes CustomerMetrics
func (ar *AggregationResult) Metrics() []*CustomerMetrics {
	return append([]*CustomerMetrics{}, ar.metrics...)
}

// Discrepancies retourne le rapport de références pendantes
func (ar *AggregationResult) Discrepancies() DiscrepancyReport {
	return ar.discrepancies
}

// Count retourne le nombre de clients dans la sortie
func (ar *AggregationResult) Count() int {
	return len(ar.metrics)
}
