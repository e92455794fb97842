package domain

import (
	customersdomain "segmetrics/internal/customers/domain"
	ordersdomain "segmetrics/internal/orders/domain"
)

// Currency devise de travail de l'agrégation (jeu de données brésilien)
const Currency = "BRL"

// Snapshot représente un instantané immuable des quatre relations sources
// L'agrégation est une fonction pure et terminante de ce snapshot:
// deux exécutions sur le même snapshot produisent le même ensemble de lignes
type Snapshot struct {
	customers []*customersdomain.Customer
	orders    []*ordersdomain.Order
	items     []*ordersdomain.OrderItem
	reviews   []*ordersdomain.Review
}

// NewSnapshot crée un snapshot à partir des quatre relations
// Des relations vides sont valides: elles produisent une sortie vide
func NewSnapshot(
	customers []*customersdomain.Customer,
	orders []*ordersdomain.Order,
	items []*ordersdomain.OrderItem,
	reviews []*ordersdomain.Review,
) *Snapshot {
	return &Snapshot{
		customers: customers,
		orders:    orders,
		items:     items,
		reviews:   reviews,
	}
}

// Customers retourne les clients
func (s *Snapshot) Customers() []*customersdomain.Customer {
	return append([]*customersdomain.Customer{}, s.customers...)
}

// Orders retourne les commandes
func (s *Snapshot) Orders() []*ordersdomain.Order {
	return append([]*ordersdomain.Order{}, s.orders...)
}

// Items retourne les lignes de commande
func (s *Snapshot) Items() []*ordersdomain.OrderItem {
	return append([]*ordersdomain.OrderItem{}, s.items...)
}

// Reviews retourne les avis
func (s *Snapshot) Reviews() []*ordersdomain.Review {
	return append([]*ordersdomain.Review{}, s.reviews...)
}

// IsEmpty vérifie si le snapshot ne contient aucune commande
func (s *Snapshot) IsEmpty() bool {
	return len(s.orders) == 0
}
