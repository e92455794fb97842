package domain

import (
	"errors"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/shared/domain"
)

// CustomerMetrics représente la ligne de sortie par client (vue matérialisée)
// Recalculée intégralement à chaque exécution: aucune mutation persistée
type CustomerMetrics struct {
	customerID     customersdomain.CustomerID
	totalOrders    int
	totalSpent     domain.Money
	avgOrderValue  domain.Money
	firstOrderDate time.Time
	lastOrderDate  time.Time
	lifespanDays   int
	avgReviewScore domain.ReviewScore
	segment        Segment
	satisfaction   SatisfactionLevel
}

// NewCustomerMetrics crée une ligne de métriques avec validation des invariants
// et dérive la valeur moyenne, la durée de vie et les deux classifications
// Invariant structurel: totalOrders >= 1 (les clients sans commande sont
// exclus en amont, jamais représentés par une division par zéro)
func NewCustomerMetrics(
	customerID customersdomain.CustomerID,
	totalOrders int,
	totalSpent domain.Money,
	firstOrderDate time.Time,
	lastOrderDate time.Time,
	avgReviewScore domain.ReviewScore,
) (*CustomerMetrics, error) {
	if customerID == "" {
		return nil, errors.New("invalid customer ID")
	}
	if totalOrders < 1 {
		return nil, errors.New("customer metrics require at least one order")
	}
	if lastOrderDate.Before(firstOrderDate) {
		return nil, errors.New("last order date cannot precede first order date")
	}

	avgOrderValue, err := totalSpent.DivideBy(totalOrders)
	if err != nil {
		return nil, err
	}

	return &CustomerMetrics{
		customerID:     customerID,
		totalOrders:    totalOrders,
		totalSpent:     totalSpent,
		avgOrderValue:  avgOrderValue,
		firstOrderDate: firstOrderDate,
		lastOrderDate:  lastOrderDate,
		lifespanDays:   int(lastOrderDate.Sub(firstOrderDate).Hours() / 24),
		avgReviewScore: avgReviewScore,
		segment:        ClassifySegment(totalSpent, totalOrders),
		satisfaction:   ClassifySatisfaction(avgReviewScore),
	}, nil
}

// CustomerID retourne l'identifiant du client
func (cm *CustomerMetrics) CustomerID() customersdomain.CustomerID {
	return cm.customerID
}

// TotalOrders retourne le nombre de commandes distinctes avec au moins un article
func (cm *CustomerMetrics) TotalOrders() int {
	return cm.totalOrders
}

// TotalSpent retourne la somme de (prix + port) sur tous les articles
func (cm *CustomerMetrics) TotalSpent() domain.Money {
	return cm.totalSpent
}

// AvgOrderValue retourne la valeur moyenne par commande
func (cm *CustomerMetrics) AvgOrderValue() domain.Money {
	return cm.avgOrderValue
}

// FirstOrderDate retourne la date de première commande
func (cm *CustomerMetrics) FirstOrderDate() time.Time {
	return cm.firstOrderDate
}

// LastOrderDate retourne la date de dernière commande
func (cm *CustomerMetrics) LastOrderDate() time.Time {
	return cm.lastOrderDate
}

// LifespanDays retourne la durée de vie en jours (0 pour une seule commande)
func (cm *CustomerMetrics) LifespanDays() int {
	return cm.lifespanDays
}

// AvgReviewScore retourne la note moyenne d'avis (indéfinie si aucun avis)
func (cm *CustomerMetrics) AvgReviewScore() domain.ReviewScore {
	return cm.avgReviewScore
}

// Segment retourne le tiers de valeur dérivé
func (cm *CustomerMetrics) Segment() Segment {
	return cm.segment
}

// Satisfaction retourne le niveau de satisfaction dérivé
func (cm *CustomerMetrics) Satisfaction() SatisfactionLevel {
	return cm.satisfaction
}
