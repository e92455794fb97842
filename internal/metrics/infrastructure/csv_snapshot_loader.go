package infrastructure

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	customersdomain "segmetrics/internal/customers/domain"
	"segmetrics/internal/metrics/domain"
	ordersdomain "segmetrics/internal/orders/domain"
	shareddomain "segmetrics/internal/shared/domain"
)

// Noms des fichiers sources attendus dans le répertoire de données
const (
	CustomersFile = "customers.csv"
	OrdersFile    = "orders.csv"
	ItemsFile     = "order_items.csv"
	ReviewsFile   = "order_reviews.csv"
)

// timestampLayout format des horodatages dans les fichiers sources
const timestampLayout = "2006-01-02 15:04:05"

// SchemaError représente une violation de schéma dans un fichier source
// Toute violation est fatale: le chargement s'arrête à la première
type SchemaError struct {
	File   string
	Row    int
	Column string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: row %d, column %q: %s", e.File, e.Row, e.Column, e.Reason)
}

// CSVSnapshotLoader charge un snapshot depuis des fichiers CSV
type CSVSnapshotLoader struct {
	dir string
}

// NewCSVSnapshotLoader crée un chargeur pour le répertoire de données donné
func NewCSVSnapshotLoader(dir string) *CSVSnapshotLoader {
	return &CSVSnapshotLoader{dir: dir}
}

// Load lit les quatre fichiers sources et construit le snapshot
func (l *CSVSnapshotLoader) Load() (*domain.Snapshot, error) {
	customers, err := l.loadCustomers()
	if err != nil {
		return nil, err
	}

	orders, err := l.loadOrders()
	if err != nil {
		return nil, err
	}

	items, err := l.loadItems()
	if err != nil {
		return nil, err
	}

	reviews, err := l.loadReviews()
	if err != nil {
		return nil, err
	}

	return domain.NewSnapshot(customers, orders, items, reviews), nil
}

// readRecords lit un fichier CSV avec en-tête et vérifie le nombre de colonnes
func (l *CSVSnapshotLoader) readRecords(file string, wantColumns int) ([][]string, error) {
	f, err := os.Open(filepath.Join(l.dir, file))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = wantColumns

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", file, err)
	}
	if len(records) == 0 {
		return nil, &SchemaError{File: file, Row: 0, Column: "", Reason: "missing header"}
	}

	return records[1:], nil
}

func (l *CSVSnapshotLoader) loadCustomers() ([]*customersdomain.Customer, error) {
	records, err := l.readRecords(CustomersFile, 3)
	if err != nil {
		return nil, err
	}

	customers := make([]*customersdomain.Customer, 0, len(records))
	for i, rec := range records {
		customer, err := customersdomain.NewCustomer(customersdomain.CustomerID(rec[0]), rec[1], rec[2])
		if err != nil {
			return nil, &SchemaError{File: CustomersFile, Row: i + 2, Column: "customer_id", Reason: err.Error()}
		}
		customers = append(customers, customer)
	}

	return customers, nil
}

func (l *CSVSnapshotLoader) loadOrders() ([]*ordersdomain.Order, error) {
	records, err := l.readRecords(OrdersFile, 4)
	if err != nil {
		return nil, err
	}

	orders := make([]*ordersdomain.Order, 0, len(records))
	for i, rec := range records {
		row := i + 2

		purchasedAt, err := time.ParseInLocation(timestampLayout, rec[3], time.UTC)
		if err != nil {
			return nil, &SchemaError{File: OrdersFile, Row: row, Column: "order_purchase_timestamp", Reason: err.Error()}
		}

		status := ordersdomain.OrderStatus(rec[2])
		if !ordersdomain.ValidOrderStatus(status) {
			return nil, &SchemaError{File: OrdersFile, Row: row, Column: "order_status",
				Reason: fmt.Sprintf("unknown status %q", rec[2])}
		}

		order, err := ordersdomain.NewOrder(
			ordersdomain.OrderID(rec[0]),
			customersdomain.CustomerID(rec[1]),
			status,
			purchasedAt,
		)
		if err != nil {
			return nil, &SchemaError{File: OrdersFile, Row: row, Column: "order_id", Reason: err.Error()}
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (l *CSVSnapshotLoader) loadItems() ([]*ordersdomain.OrderItem, error) {
	records, err := l.readRecords(ItemsFile, 3)
	if err != nil {
		return nil, err
	}

	items := make([]*ordersdomain.OrderItem, 0, len(records))
	for i, rec := range records {
		row := i + 2

		price, err := parseMoney(rec[1])
		if err != nil {
			return nil, &SchemaError{File: ItemsFile, Row: row, Column: "price", Reason: err.Error()}
		}
		freight, err := parseMoney(rec[2])
		if err != nil {
			return nil, &SchemaError{File: ItemsFile, Row: row, Column: "freight_value", Reason: err.Error()}
		}

		item, err := ordersdomain.NewOrderItem(ordersdomain.OrderID(rec[0]), price, freight)
		if err != nil {
			return nil, &SchemaError{File: ItemsFile, Row: row, Column: "order_id", Reason: err.Error()}
		}
		items = append(items, item)
	}

	return items, nil
}

func (l *CSVSnapshotLoader) loadReviews() ([]*ordersdomain.Review, error) {
	records, err := l.readRecords(ReviewsFile, 2)
	if err != nil {
		return nil, err
	}

	reviews := make([]*ordersdomain.Review, 0, len(records))
	for i, rec := range records {
		row := i + 2

		score, err := strconv.Atoi(rec[1])
		if err != nil {
			return nil, &SchemaError{File: ReviewsFile, Row: row, Column: "review_score", Reason: err.Error()}
		}

		review, err := ordersdomain.NewReview(ordersdomain.OrderID(rec[0]), score)
		if err != nil {
			return nil, &SchemaError{File: ReviewsFile, Row: row, Column: "review_score", Reason: err.Error()}
		}
		reviews = append(reviews, review)
	}

	return reviews, nil
}

func parseMoney(raw string) (shareddomain.Money, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return shareddomain.Money{}, err
	}
	return shareddomain.NewMoney(value, domain.Currency)
}
