package infrastructure

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"segmetrics/database"
	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/metrics/domain"
	ordersdomain "segmetrics/internal/orders/domain"
	shareddomain "segmetrics/internal/shared/domain"
	"segmetrics/internal/shared/infrastructure"
)

// SnapshotQueryRepository charge les quatre tables sources en un snapshot immuable
type SnapshotQueryRepository struct {
	infrastructure.BaseRepository
}

// NewSnapshotQueryRepository crée un nouveau repository de lecture du snapshot
func NewSnapshotQueryRepository(db *sql.DB) *SnapshotQueryRepository {
	return &SnapshotQueryRepository{
		BaseRepository: infrastructure.NewBaseRepository(db),
	}
}

// WithContext retourne une copie du repository liée au contexte donné
func (r *SnapshotQueryRepository) WithContext(ctx context.Context) *SnapshotQueryRepository {
	return &SnapshotQueryRepository{
		BaseRepository: r.BaseRepository.WithContext(ctx),
	}
}

// Load charge l'intégralité des tables sources
// Le snapshot retourné est une copie détachée: les agrégations qui le
// consomment ne retournent jamais à la base
func (r *SnapshotQueryRepository) Load() (*domain.Snapshot, error) {
	customers, err := r.loadCustomers()
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}

	orders, err := r.loadOrders()
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	items, err := r.loadItems()
	if err != nil {
		return nil, fmt.Errorf("load order items: %w", err)
	}

	reviews, err := r.loadReviews()
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}

	return domain.NewSnapshot(customers, orders, items, reviews), nil
}

// Version dérive un identifiant de version du contenu courant de la table
// des commandes; sert de clé de cache pour les agrégations
func (r *SnapshotQueryRepository) Version() (string, error) {
	query := `SELECT COUNT(*), COALESCE(MAX(purchased_at), 'epoch'::timestamptz) FROM orders`

	var count int64
	var latest time.Time
	if err := r.QueryRow(query).Scan(&count, &latest); err != nil {
		return "", fmt.Errorf("snapshot version: %w", err)
	}

	return fmt.Sprintf("%d-%d", count, latest.Unix()), nil
}

func (r *SnapshotQueryRepository) loadCustomers() ([]*customersdomain.Customer, error) {
	query := `SELECT id, city, state FROM customers`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []*customersdomain.Customer
	for rows.Next() {
		var row database.CustomerRow
		if err := rows.Scan(&row.ID, &row.City, &row.State); err != nil {
			return nil, err
		}

		customer, err := customerFromRow(row)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	return customers, rows.Err()
}

func (r *SnapshotQueryRepository) loadOrders() ([]*ordersdomain.Order, error) {
	query := `SELECT id, customer_id, status, purchased_at FROM orders`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*ordersdomain.Order
	for rows.Next() {
		var row database.OrderRow
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Status, &row.PurchasedAt); err != nil {
			return nil, err
		}

		order, err := orderFromRow(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (r *SnapshotQueryRepository) loadItems() ([]*ordersdomain.OrderItem, error) {
	query := `SELECT order_id, price, freight_value FROM order_items`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*ordersdomain.OrderItem
	for rows.Next() {
		var row database.OrderItemRow
		if err := rows.Scan(&row.OrderID, &row.Price, &row.FreightValue); err != nil {
			return nil, err
		}

		item, err := itemFromRow(row)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *SnapshotQueryRepository) loadReviews() ([]*ordersdomain.Review, error) {
	query := `SELECT order_id, review_score FROM order_reviews`

	rows, err := r.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*ordersdomain.Review
	for rows.Next() {
		var row database.ReviewRow
		if err := rows.Scan(&row.OrderID, &row.ReviewScore); err != nil {
			return nil, err
		}

		review, err := reviewFromRow(row)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// Conversion des lignes brutes vers les types du domaine; toute ligne qui
// viole un invariant du domaine fait échouer le chargement

func customerFromRow(row database.CustomerRow) (*customersdomain.Customer, error) {
	return customersdomain.NewCustomer(customersdomain.CustomerID(row.ID), row.City, row.State)
}

func orderFromRow(row database.OrderRow) (*ordersdomain.Order, error) {
	return ordersdomain.NewOrder(
		ordersdomain.OrderID(row.ID),
		customersdomain.CustomerID(row.CustomerID),
		ordersdomain.OrderStatus(row.Status),
		row.PurchasedAt,
	)
}

func itemFromRow(row database.OrderItemRow) (*ordersdomain.OrderItem, error) {
	price, err := shareddomain.NewMoney(row.Price, domain.Currency)
	if err != nil {
		return nil, err
	}
	freight, err := shareddomain.NewMoney(row.FreightValue, domain.Currency)
	if err != nil {
		return nil, err
	}
	return ordersdomain.NewOrderItem(ordersdomain.OrderID(row.OrderID), price, freight)
}

func reviewFromRow(row database.ReviewRow) (*ordersdomain.Review, error) {
	return ordersdomain.NewReview(ordersdomain.OrderID(row.OrderID), row.ReviewScore)
}
