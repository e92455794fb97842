package domain

import "segmetrics/internal/shared/domain"

// Segment représente le tiers de valeur d'un client
type Segment string

const (
	SegmentHighValueLoyal    Segment = "High-Value Loyal"
	SegmentMediumValueActive Segment = "Medium-Value Active"
	SegmentLowValueRegular   Segment = "Low-Value Regular"
	SegmentOccasionalBuyer   Segment = "Occasional Buyer"
)

// segmentRule représente une règle de classification ordonnée
// Les deux seuils sont des bornes inférieures INCLUSIVES et doivent être
// atteints simultanément (ET logique, jamais OU)
type segmentRule struct {
	minSpentCents int64
	minOrders     int
	segment       Segment
}

// segmentRules est évaluée dans l'ordre strict, première règle gagnante
// L'ordre est porteur de sens: ne pas réordonner
var segmentRules = []segmentRule{
	{minSpentCents: 100_000, minOrders: 5, segment: SegmentHighValueLoyal},
	{minSpentCents: 50_000, minOrders: 3, segment: SegmentMediumValueActive},
	{minSpentCents: 20_000, minOrders: 2, segment: SegmentLowValueRegular},
}

// ClassifySegment classe un client selon son total dépensé et son nombre
// de commandes. Fonction pure: déterministe, sans état caché
// Un client à grosse dépense mais une seule commande échoue la condition
// ET de chaque règle et retombe en Occasional Buyer
func ClassifySegment(totalSpent domain.Money, totalOrders int) Segment {
	for _, rule := range segmentRules {
		if totalSpent.Cents() >= rule.minSpentCents && totalOrders >= rule.minOrders {
			return rule.segment
		}
	}
	return SegmentOccasionalBuyer
}
