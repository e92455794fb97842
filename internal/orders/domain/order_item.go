package domain

import (
	"errors"

	"segmetrics/internal/shared/domain"
)

// OrderItem représente une ligne de commande (prix + frais de port)
type OrderItem struct {
	orderID OrderID
	price   domain.Money
	freight domain.Money
}

// NewOrderItem crée une nouvelle ligne de commande avec validation
func NewOrderItem(orderID OrderID, price, freight domain.Money) (*OrderItem, error) {
	if orderID == "" {
		return nil, errors.New("invalid order ID")
	}
	if price.Currency() != freight.Currency() {
		return nil, errors.New("price and freight must share a currency")
	}

	return &OrderItem{
		orderID: orderID,
		price:   price,
		freight: freight,
	}, nil
}

// OrderID retourne l'identifiant de la commande
func (oi *OrderItem) OrderID() OrderID {
	return oi.orderID
}

// Price retourne le prix de l'article
func (oi *OrderItem) Price() domain.Money {
	return oi.price
}

// Freight retourne les frais de port de l'article
func (oi *OrderItem) Freight() domain.Money {
	return oi.freight
}

// Total retourne prix + frais de port
func (oi *OrderItem) Total() (domain.Money, error) {
	return oi.price.Add(oi.freight)
}
