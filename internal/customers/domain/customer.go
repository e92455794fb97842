package domain

import "errors"

// CustomerID représente l'identifiant unique d'un client
type CustomerID string

// Customer représente un client avec sa localisation
type Customer struct {
	id    CustomerID
	city  string
	state string
}

// NewCustomer crée un nouveau client avec validation
func NewCustomer(id CustomerID, city, state string) (*Customer, error) {
	if id == "" {
		return nil, errors.New("invalid customer ID")
	}

	return &Customer{
		id:    id,
		city:  city,
		state: state,
	}, nil
}

// ID retourne l'identifiant du client
func (c *Customer) ID() CustomerID {
	return c.id
}

// City retourne la ville du client
func (c *Customer) City() string {
	return c.city
}

// State retourne l'état (région) du client
func (c *Customer) State() string {
	return c.state
}
