package database

import "time"

// Lignes brutes des quatre tables sources, telles que stockées en base

// CustomerRow - Client
type CustomerRow struct {
	ID    string `json:"id"`
	City  string `json:"city"`
	State string `json:"state"`
}

// OrderRow - Commande
type OrderRow struct {
	ID          string    `json:"id"`
	CustomerID  string    `json:"customer_id"`
	Status      string    `json:"status"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// OrderItemRow - Ligne de commande
type OrderItemRow struct {
	OrderID      string  `json:"order_id"`
	Price        float64 `json:"price"`
	FreightValue float64 `json:"freight_value"`
}

// ReviewRow - Avis
type ReviewRow struct {
	OrderID     string `json:"order_id"`
	ReviewScore int    `json:"review_score"`
}
