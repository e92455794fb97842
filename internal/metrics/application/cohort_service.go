package application

import (
	"sort"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/metrics/domain"
	ordersdomain "segmetrics/internal/orders/domain"
)

// CohortService calcule la rétention par cohorte mensuelle
// Cohorte = ensemble des clients partageant le mois calendaire de leur
// première commande; même famille d'agrégation que CustomerMetrics,
// mêmes règles de jointure (références pendantes écartées)
type CohortService struct{}

// NewCohortService crée une nouvelle instance de CohortService
func NewCohortService() *CohortService {
	return &CohortService{}
}

// Retention produit les lignes de rétention pour toutes les cohortes
// Pour chaque cohorte, chaque mois du mois de cohorte jusqu'au dernier mois
// d'activité observé dans le snapshot est rapporté: le premier mois vaut
// 100% par définition, un mois sans client restant est rapporté à 0%
func (s *CohortService) Retention(snapshot *domain.Snapshot) ([]*domain.CohortRow, error) {
	// Seules les commandes rattachables à un client connu et portant au
	// moins un article comptent, comme pour CustomerMetrics
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
		if knownCustomers[o.CustomerID()] {
			orderIndex[o.ID()] = orderInfo{customerID: o.CustomerID(), date: o.PurchasedAt()}
		}
	}

	ordersWithItems := make(map[ordersdomain.OrderID]bool)
	for _, item := range snapshot.Items() {
		if _, ok := orderIndex[item.OrderID()]; ok {
			ordersWithItems[item.OrderID()] = true
		}
	}

	// Mois de première commande et mois d'activité par client
	firstMonth := make(map[customersdomain.CustomerID]time.Time)
	activity := make(map[customersdomain.CustomerID]map[time.Time]bool)
	var lastMonth time.Time

	for orderID := range ordersWithItems {
		info := orderIndex[orderID]
		month := domain.MonthOf(info.date)

		if fm, ok := firstMonth[info.customerID]; !ok || month.Before(fm) {
			firstMonth[info.customerID] = month
		}

		if activity[info.customerID] == nil {
			activity[info.customerID] = make(map[time.Time]bool)
		}
		activity[info.customerID][month] = true

		if month.After(lastMonth) {
			lastMonth = month
		}
	}

	if len(firstMonth) == 0 {
		return []*domain.CohortRow{}, nil
	}

	// Effectifs par cohorte
	cohorts := make(map[time.Time][]customersdomain.CustomerID)
	for customerID, month := range firstMonth {
		cohorts[month] = append(cohorts[month], customerID)
	}

	cohortMonths := make([]time.Time, 0, len(cohorts))
	for month := range cohorts {
		cohortMonths = append(cohortMonths, month)
	}
	sort.Slice(cohortMonths, func(i, j int) bool { return cohortMonths[i].Before(cohortMonths[j]) })

	var rows []*domain.CohortRow
	for _, cohortMonth := range cohortMonths {
		members := cohorts[cohortMonth]

		for month := cohortMonth; !month.After(lastMonth); month = domain.NextMonth(month) {
			active := 0
			for _, customerID := range members {
				if activity[customerID][month] {
					active++
				}
			}

			row, err := domain.NewCohortRow(cohortMonth, month, len(members), active)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
	}

	return rows, nil
}
