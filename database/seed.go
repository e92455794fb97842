package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"
)

// SeedDatabase peuple les quatre tables sources avec des données synthétiques
// dans le style du jeu de données olist (identifiants hexadécimaux, villes
// brésiliennes, statuts majoritairement "delivered")
func SeedDatabase(customerCount, years int) error {
	fmt.Println("🌱 Création du schéma...")
	if err := createSchema(); err != nil {
		return fmt.Errorf("erreur création schéma: %w", err)
	}

	fmt.Printf("🌱 Génération de %d clients...\n", customerCount)
	customerIDs, err := seedCustomers(customerCount)
	if err != nil {
		return fmt.Errorf("erreur génération clients: %w", err)
	}

	fmt.Println("🌱 Génération des commandes, articles et avis...")
	if err := seedOrders(customerIDs, years); err != nil {
		return fmt.Errorf("erreur génération commandes: %w", err)
	}

	fmt.Println("🔍 Analyse des tables...")
	if _, err := DB.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}

	return nil
}

func createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS customers (
			id    VARCHAR(32) PRIMARY KEY,
			city  VARCHAR(100) NOT NULL,
			state VARCHAR(2)   NOT NULL
		);

		CREATE TABLE IF NOT EXISTS orders (
			id           VARCHAR(32) PRIMARY KEY,
			customer_id  VARCHAR(32) NOT NULL,
			status       VARCHAR(20) NOT NULL,
			purchased_at TIMESTAMPTZ NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_items (
			order_id      VARCHAR(32)   NOT NULL,
			price         NUMERIC(10,2) NOT NULL,
			freight_value NUMERIC(10,2) NOT NULL
		);

		CREATE TABLE IF NOT EXISTS order_reviews (
			order_id     VARCHAR(32) NOT NULL,
			review_score INT         NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer_id);
		CREATE INDEX IF NOT EXISTS idx_items_order ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_reviews_order ON order_reviews(order_id);

		TRUNCATE customers, orders, order_items, order_reviews;
	`
	_, err := DB.Exec(schema)
	return err
}

// hexID génère un identifiant de 32 caractères hexadécimaux
func hexID(rng *rand.Rand) string {
	return fmt.Sprintf("%016x%016x", rng.Uint64(), rng.Uint64())
}

var brazilianCities = []struct {
	city  string
	state string
}{
	{"sao paulo", "SP"},
	{"campinas", "SP"},
	{"rio de janeiro", "RJ"},
	{"niteroi", "RJ"},
	{"belo horizonte", "MG"},
	{"curitiba", "PR"},
	{"porto alegre", "RS"},
	{"salvador", "BA"},
	{"recife", "PE"},
	{"brasilia", "DF"},
	{"fortaleza", "CE"},
	{"goiania", "GO"},
}

func seedCustomers(count int) ([]string, error) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	ids := make([]string, 0, count)

	bar := progressbar.Default(int64(count))

	for i := 0; i < count; i++ {
		id := hexID(rng)
		loc := brazilianCities[rng.Intn(len(brazilianCities))]

		_, err := DB.Exec(`
			INSERT INTO customers (id, city, state)
			VALUES ($1, $2, $3)
		`, id, loc.city, loc.state)
		if err != nil {
			return nil, err
		}

		ids = append(ids, id)
		bar.Add(1)
	}

	fmt.Printf("   ✅ %d clients créés\n", len(ids))
	return ids, nil
}

// orderStatuses distribution majoritairement "delivered", comme dans le
// jeu de données source
var orderStatuses = []string{
	"delivered", "delivered", "delivered", "delivered", "delivered",
	"delivered", "delivered", "shipped", "processing", "canceled",
}

func seedOrders(customerIDs []string, years int) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	end := time.Now().UTC()
	start := end.AddDate(-years, 0, 0)
	span := int(end.Sub(start).Hours())

	totalOrders := 0
	totalItems := 0
	totalReviews := 0

	bar := progressbar.Default(int64(len(customerIDs)))

	for _, customerID := range customerIDs {
		// La plupart des clients n'ont qu'une ou deux commandes; une
		// minorité en accumule beaucoup (profils fidèles)
		orderCount := 1 + rng.Intn(2)
		if rng.Intn(10) == 0 {
			orderCount = 3 + rng.Intn(6)
		}

		for o := 0; o < orderCount; o++ {
			orderID := hexID(rng)
			purchasedAt := start.Add(time.Duration(rng.Intn(span)) * time.Hour)
			status := orderStatuses[rng.Intn(len(orderStatuses))]

			_, err := DB.Exec(`
				INSERT INTO orders (id, customer_id, status, purchased_at)
				VALUES ($1, $2, $3, $4)
			`, orderID, customerID, status, purchasedAt)
			if err != nil {
				return err
			}
			totalOrders++

			itemCount := 1 + rng.Intn(3)
			for i := 0; i < itemCount; i++ {
				price := 10.0 + rng.Float64()*490.0
				freight := 5.0 + rng.Float64()*45.0

				_, err := DB.Exec(`
					INSERT INTO order_items (order_id, price, freight_value)
					VALUES ($1, $2, $3)
				`, orderID, price, freight)
				if err != nil {
					return err
				}
				totalItems++
			}

			// Environ 70% des commandes reçoivent un avis
			if rng.Intn(10) < 7 {
				score := 1 + rng.Intn(5)

				_, err := DB.Exec(`
					INSERT INTO order_reviews (order_id, review_score)
					VALUES ($1, $2)
				`, orderID, score)
				if err != nil {
					return err
				}
				totalReviews++
			}
		}

		bar.Add(1)
	}

	fmt.Printf("   ✅ %d commandes, %d articles, %d avis créés\n", totalOrders, totalItems, totalReviews)
	return nil
}
