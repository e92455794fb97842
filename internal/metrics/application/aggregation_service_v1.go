package application

import (
	"fmt"
	"sort"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/metrics/domain"
	ordersdomain "segmetrics/internal/orders/domain"
	shareddomain "segmetrics/internal/shared/domain"
)

// AggregationServiceV1 agrégation séquentielle de référence (Version 1)
// Réduction groupée pure sur un snapshot immuable: pas d'accumulateur
// global, pas d'état entre deux exécutions
type AggregationServiceV1 struct{}

// NewAggregationServiceV1 crée une nouvelle instance de AggregationServiceV1
func NewAggregationServiceV1() *AggregationServiceV1 {
	return &AggregationServiceV1{}
}

// customerAccumulator accumule les métriques d'un client pendant la réduction
type customerAccumulator struct {
	spentCents  int64
	orders      map[ordersdomain.OrderID]bool // commandes distinctes avec >= 1 article
	firstOrder  time.Time
	lastOrder   time.Time
	reviewSum   int
	reviewCount int
}

// Aggregate produit la table CustomerMetrics à partir du snapshot
// Politique de jointure:
//   - clients -> commandes: inner (seuls les clients avec >= 1 commande survivent)
//   - commandes -> articles: somme de (prix + port) AVANT division par le
//     nombre de commandes (jamais une moyenne de moyennes)
//   - commandes -> avis: left (absence d'avis = score indéfini, pas 0)
//
// Les références pendantes sont écartées silencieusement et comptées
func (s *AggregationServiceV1) Aggregate(snapshot *domain.Snapshot) (*domain.AggregationResult, error) {
	var report domain.DiscrepancyReport

	// Index des clients connus
	knownCustomers := make(map[customersdomain.CustomerID]bool)
	for _, c := range snapshot.Customers() {
		knownCustomers[c.ID()] = true
	}

	// Index commande -> (client, date); les commandes orphelines sont écartées
	type orderInfo struct {
		customerID customersdomain.CustomerID
		date       time.Time
	}
	orderIndex := make(map[ordersdomain.OrderID]orderInfo)
	for _, o := range snapshot.Orders() {
		if !knownCustomers[o.CustomerID()] {
			report.OrphanOrders++
			continue
		}
		orderIndex[o.ID()] = orderInfo{customerID: o.CustomerID(), date: o.PurchasedAt()}
	}

	// Réduction des articles: somme exacte des centimes par client
	// et marquage des commandes ayant au moins un article
	accs := make(map[customersdomain.CustomerID]*customerAccumulator)
	for _, item := range snapshot.Items() {
		info, ok := orderIndex[item.OrderID()]
		if !ok {
			report.OrphanItems++
			continue
		}

		acc := accs[info.customerID]
		if acc == nil {
			acc = &customerAccumulator{orders: make(map[ordersdomain.OrderID]bool)}
			accs[info.customerID] = acc
		}

		total, err := item.Total()
		if err != nil {
			return nil, fmt.Errorf("item total for order %s: %w", item.OrderID(), err)
		}
		acc.spentCents += total.Cents()

		if !acc.orders[item.OrderID()] {
			acc.orders[item.OrderID()] = true
			if acc.firstOrder.IsZero() || info.date.Before(acc.firstOrder) {
				acc.firstOrder = info.date
			}
			if info.date.After(acc.lastOrder) {
				acc.lastOrder = info.date
			}
		}
	}

	// Left join des avis: un avis rejoint le client via sa commande
	for _, review := range snapshot.Reviews() {
		info, ok := orderIndex[review.OrderID()]
		if !ok {
			report.OrphanReviews++
			continue
		}
		if acc := accs[info.customerID]; acc != nil {
			acc.reviewSum += review.Score()
			acc.reviewCount++
		}
	}

	metrics, err := buildMetrics(accs)
	if err != nil {
		return nil, err
	}

	return domain.NewAggregationResult(metrics, report), nil
}

// buildMetrics matérialise les accumulateurs en lignes CustomerMetrics triées
func buildMetrics(accs map[customersdomain.CustomerID]*customerAccumulator) ([]*domain.CustomerMetrics, error) {
	metrics := make([]*domain.CustomerMetrics, 0, len(accs))
	for customerID, acc := range accs {
		totalSpent, err := shareddomain.NewMoneyFromCents(acc.spentCents, domain.Currency)
		if err != nil {
			return nil, fmt.Errorf("total spent for customer %s: %w", customerID, err)
		}

		avgScore, err := shareddomain.NewReviewScore(acc.reviewSum, acc.reviewCount)
		if err != nil {
			return nil, fmt.Errorf("review score for customer %s: %w", customerID, err)
		}

		cm, err := domain.NewCustomerMetrics(
			customerID,
			len(acc.orders),
			totalSpent,
			acc.firstOrder,
			acc.lastOrder,
			avgScore,
		)
		if err != nil {
			return nil, fmt.Errorf("metrics for customer %s: %w", customerID, err)
		}
		metrics = append(metrics, cm)
	}

	// L'ordre des lignes n'est pas porteur de sens; le tri rend
	// simplement la sortie reproductible pour les exports
	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].CustomerID() < metrics[j].CustomerID()
	})

	return metrics, nil
}
