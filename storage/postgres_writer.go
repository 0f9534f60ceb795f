package storage

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/lib/pq"

	"rental-miner/models"
	"rental-miner/utils"
)

// PostgresWriter persists prepared listings and the final ranked rules.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter. The initial ping
// goes through the retry strategy since the database container may still
// be starting.
func NewPostgresWriter(dsn string, retry *utils.RetryConfig) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	if err := retry.Do("postgres ping", db.Ping); err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id          SERIAL PRIMARY KEY,
			price       NUMERIC(12,2) NOT NULL,
			square_feet NUMERIC(12,2) NOT NULL,
			bedrooms    VARCHAR(20)   NOT NULL DEFAULT '',
			bathrooms   VARCHAR(20)   NOT NULL DEFAULT '',
			state       VARCHAR(20)   NOT NULL DEFAULT '',
			amenities   TEXT          NOT NULL DEFAULT '',
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE TABLE IF NOT EXISTS association_rules (
			id         SERIAL PRIMARY KEY,
			rank       INT           NOT NULL,
			antecedent TEXT          NOT NULL,
			consequent TEXT          NOT NULL,
			support    NUMERIC(10,6) NOT NULL,
			confidence NUMERIC(10,6) NOT NULL,
			lift       NUMERIC(10,6) NOT NULL,
			created_at TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_listings_price       ON listings(price);
		CREATE INDEX IF NOT EXISTS idx_listings_state       ON listings(state);
		CREATE INDEX IF NOT EXISTS idx_rules_rank           ON association_rules(rank);
		CREATE INDEX IF NOT EXISTS idx_rules_consequent     ON association_rules(consequent);
	`)
	return err
}

// Clear deletes all stored listings and rules from a previous run.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM association_rules; DELETE FROM listings")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// WriteListings batch-inserts all prepared listings, clearing old data first.
func (pw *PostgresWriter) WriteListings(records []*models.PreparedRecord) error {
	if len(records) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 100
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertListingBatch(records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertListingBatch(batch []*models.PreparedRecord) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)

	for idx, r := range batch {
		base := idx * 6
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			r.Price, r.SquareFeet, r.Bedrooms, r.Bathrooms, r.State, r.Amenities)
	}

	query := fmt.Sprintf(`
		INSERT INTO listings (price, square_feet, bedrooms, bathrooms, state, amenities)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert listings: %w", err)
	}
	return nil
}

// FetchListings retrieves all stored listings. The analysis stage reads
// its input back from the database when persistence is enabled.
func (pw *PostgresWriter) FetchListings() ([]*models.PreparedRecord, error) {
	rows, err := pw.db.Query(`
		SELECT price, square_feet, bedrooms, bathrooms, state, amenities
		FROM listings
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch listings: %w", err)
	}
	defer rows.Close()

	var records []*models.PreparedRecord
	for rows.Next() {
		r := &models.PreparedRecord{}
		if err := rows.Scan(
			&r.Price, &r.SquareFeet, &r.Bedrooms, &r.Bathrooms, &r.State, &r.Amenities,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// WriteRules batch-inserts the ranked rules in order.
func (pw *PostgresWriter) WriteRules(rules []*models.AssociationRule) error {
	if len(rules) == 0 {
		return nil
	}

	const batchSize = 100
	for i := 0; i < len(rules); i += batchSize {
		end := i + batchSize
		if end > len(rules) {
			end = len(rules)
		}
		if err := pw.insertRuleBatch(rules[i:end], i); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertRuleBatch(batch []*models.AssociationRule, offset int) error {
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*6)

	for idx, r := range batch {
		base := idx * 6
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6))
		valueArgs = append(valueArgs,
			offset+idx+1,
			strings.Join(r.Antecedent, " + "),
			strings.Join(r.Consequent, " + "),
			r.Support, r.Confidence, r.Lift)
	}

	query := fmt.Sprintf(`
		INSERT INTO association_rules (rank, antecedent, consequent, support, confidence, lift)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	if err != nil {
		return fmt.Errorf("postgres: insert rules: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}
