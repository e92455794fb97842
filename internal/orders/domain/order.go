package domain

import (
	"errors"
	"fmt"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
)

// OrderID représente l'identifiant unique d'une commande
type OrderID string

// OrderStatus représente le statut d'une commande
type OrderStatus string

const (
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusCanceled   OrderStatus = "canceled"
)

// ValidOrderStatus vérifie qu'un statut appartient à l'énumération
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusDelivered, OrderStatusShipped, OrderStatusProcessing, OrderStatusCanceled:
		return true
	}
	return false
}

// Order représente une commande
type Order struct {
	id          OrderID
	customerID  customersdomain.CustomerID
	status      OrderStatus
	purchasedAt time.Time
}

// NewOrder crée une nouvelle commande avec validation
func NewOrder(
	id OrderID,
	customerID customersdomain.CustomerID,
	status OrderStatus,
	purchasedAt time.Time,
) (*Order, error) {
	if id == "" {
		return nil, errors.New("invalid order ID")
	}
	if customerID == "" {
		return nil, errors.New("invalid customer ID")
	}
	if !ValidOrderStatus(status) {
		return nil, fmt.Errorf("invalid order status: %q", status)
	}
	if purchasedAt.IsZero() {
		return nil, errors.New("purchase timestamp cannot be zero")
	}

	return &Order{
		id:          id,
		customerID:  customerID,
		status:      status,
		purchasedAt: purchasedAt,
	}, nil
}

// ID retourne l'identifiant de la commande
func (o *Order) ID() OrderID {
	return o.id
}

// CustomerID retourne l'identifiant du client
func (o *Order) CustomerID() customersdomain.CustomerID {
	return o.customerID
}

// Status retourne le statut de la commande
func (o *Order) Status() OrderStatus {
	return o.status
}

// PurchasedAt retourne l'horodatage d'achat
func (o *Order) PurchasedAt() time.Time {
	return o.purchasedAt
}
