package application

import (
	"fmt"
	"sort"
	"sync"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/metrics/domain"
	ordersdomain "segmetrics/internal/orders/domain"
	sharedinfra "segmetrics/internal/shared/infrastructure"
)

// AggregationServiceV2 agrégation optimisée (Version 2)
// Même sémantique que la V1, avec deux optimisations:
//   - cache TTL: le snapshot étant immuable, le résultat d'une version
//     de snapshot déjà calculée est retourné sans aucun recalcul
//   - partitionnement par client sur un pool de workers: la réduction est
//     indépendante par client, donc parallélisable sans coordination
//
// Invariant: pour tout snapshot, la V2 produit exactement le même ensemble
// de lignes que la V1 (l'exécution séquentielle fait référence)
type AggregationServiceV2 struct {
	cache          sharedinfra.Cache
	cacheTTL       time.Duration
	partitionCount int
}

// NewAggregationServiceV2 crée une nouvelle instance de AggregationServiceV2
func NewAggregationServiceV2(cache sharedinfra.Cache, partitionCount int) *AggregationServiceV2 {
	if partitionCount < 1 {
		partitionCount = 4
	}
	return &AggregationServiceV2{
		cache:          cache,
		cacheTTL:       5 * time.Minute,
		partitionCount: partitionCount,
	}
}

// Aggregate produit la table CustomerMetrics pour une version de snapshot
// snapshotVersion identifie l'instantané courant des tables sources
// (fourni par l'appelant); il ne sert qu'à la clé de cache
func (s *AggregationServiceV2) Aggregate(snapshotVersion string, snapshot *domain.Snapshot) (*domain.AggregationResult, error) {
	cacheKey := s.buildCacheKey(snapshotVersion)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*domain.AggregationResult), nil
	}

	result, err := s.aggregatePartitioned(snapshot)
	if err != nil {
		return nil, err
	}

	s.cache.Set(cacheKey, result, s.cacheTTL)

	return result, nil
}

// aggregatePartitioned exécute la réduction partitionnée par client
func (s *AggregationServiceV2) aggregatePartitioned(snapshot *domain.Snapshot) (*domain.AggregationResult, error) {
	var report domain.DiscrepancyReport

	// Phase 1 (séquentielle): index des références et distribution des
	// lignes valides dans leur partition; les orphelins sont comptés ici
	// car une ligne sans client résolu n'a pas de partition
	knownCustomers := make(map[customersdomain.CustomerID]bool)
	for _, c := range snapshot.Customers() {
		knownCustomers[c.ID()] = true
	}

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

	partitionOf := func(id customersdomain.CustomerID) int {
		return int(sharedinfra.FNV32(string(id)) % uint32(s.partitionCount))
	}

	itemParts := make([][]*ordersdomain.OrderItem, s.partitionCount)
	for _, item := range snapshot.Items() {
		info, ok := orderIndex[item.OrderID()]
		if !ok {
			report.OrphanItems++
			continue
		}
		p := partitionOf(info.customerID)
		itemParts[p] = append(itemParts[p], item)
	}

	reviewParts := make([][]*ordersdomain.Review, s.partitionCount)
	for _, review := range snapshot.Reviews() {
		info, ok := orderIndex[review.OrderID()]
		if !ok {
			report.OrphanReviews++
			continue
		}
		p := partitionOf(info.customerID)
		reviewParts[p] = append(reviewParts[p], review)
	}

	// Phase 2 (parallèle): chaque partition est réduite indépendamment
	// puis matérialisée; la fusion se fait sous mutex
	pool := sharedinfra.NewWorkerPool(s.partitionCount)
	pool.Start()

	var mu sync.Mutex
	merged := make([]*domain.CustomerMetrics, 0)

	for p := 0; p < s.partitionCount; p++ {
		items := itemParts[p]
		reviews := reviewParts[p]

		task := func() error {
			accs := make(map[customersdomain.CustomerID]*customerAccumulator)

			for _, item := range items {
				info := orderIndex[item.OrderID()]

				acc := accs[info.customerID]
				if acc == nil {
					acc = &customerAccumulator{orders: make(map[ordersdomain.OrderID]bool)}
					accs[info.customerID] = acc
				}

				total, err := item.Total()
				if err != nil {
					return fmt.Errorf("item total for order %s: %w", item.OrderID(), err)
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

			for _, review := range reviews {
				info := orderIndex[review.OrderID()]
				if acc := accs[info.customerID]; acc != nil {
					acc.reviewSum += review.Score()
					acc.reviewCount++
				}
			}

			metrics, err := buildMetrics(accs)
			if err != nil {
				return err
			}

			mu.Lock()
			merged = append(merged, metrics...)
			mu.Unlock()

			return nil
		}

		if err := pool.Submit(task); err != nil {
			pool.Stop()
			return nil, err
		}
	}

	pool.Wait()

	for err := range pool.Errors() {
		if err != nil {
			return nil, err
		}
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CustomerID() < merged[j].CustomerID()
	})

	return domain.NewAggregationResult(merged, report), nil
}

// buildCacheKey construit la clé de cache pour une version de snapshot
func (s *AggregationServiceV2) buildCacheKey(snapshotVersion string) string {
	return sharedinfra.NewCacheKeyBuilder().
		Add("metrics").
		Add("v2").
		Add(snapshotVersion).
		Build()
}

// InvalidateCache invalide le résultat mis en cache pour une version de snapshot
func (s *AggregationServiceV2) InvalidateCache(snapshotVersion string) {
	s.cache.Delete(s.buildCacheKey(snapshotVersion))
}

// ClearCache vide tout le cache
func (s *AggregationServiceV2) ClearCache() {
	s.cache.Clear()
}
