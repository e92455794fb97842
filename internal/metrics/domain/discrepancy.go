package domain

// DiscrepancyReport compte les références pendantes écartées de l'agrégation
// Une référence cassée n'est jamais fatale: la ligne est exclue de la
// jointure et comptée ici pour le rapport de cohérence
type DiscrepancyReport struct {
	OrphanOrders  int `json:"orphan_orders"`  // commandes vers un client inconnu
	OrphanItems   int `json:"orphan_items"`   // articles vers une commande inconnue
	OrphanReviews int `json:"orphan_reviews"` // avis vers une commande inconnue
}

// Total retourne le nombre total de lignes écartées
func (dr DiscrepancyReport) Total() int {
	return dr.OrphanOrders + dr.OrphanItems + dr.OrphanReviews
}

// IsClean vérifie qu'aucune référence pendante n'a été rencontrée
func (dr DiscrepancyReport) IsClean() bool {
	return dr.Total() == 0
}

// Merge additionne deux rapports (fusion des partitions)
func (dr DiscrepancyReport) Merge(other DiscrepancyReport) DiscrepancyReport {
	return DiscrepancyReport{
		OrphanOrders:  dr.OrphanOrders + other.OrphanOrders,
		OrphanItems:   dr.OrphanItems + other.OrphanItems,
		OrphanReviews: dr.OrphanReviews + other.OrphanReviews,
	}
}
