package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shoplens/shoplens/internal/database"
	"github.com/shoplens/shoplens/internal/models"
)

// PostgresPersistence keeps a collection in a collection_entries table.
// Each save replaces the collection's rows inside one transaction so a
// reader never observes a half-written list.
//
// Schema:
//
//	CREATE TABLE IF NOT EXISTS collection_entries (
//	    collection  TEXT    NOT NULL,
//	    position    INT     NOT NULL,
//	    product     JSONB   NOT NULL,
//	    PRIMARY KEY (collection, position)
//	);
type PostgresPersistence struct {
	db         *database.DB
	collection string
}

func NewPostgresPersistence(db *database.DB, collection string) *PostgresPersistence {
	return &PostgresPersistence{db: db, collection: collection}
}

func (p *PostgresPersistence) Load(ctx context.Context) ([]models.ProductInfo, error) {
	rows, err := p.db.Query(ctx,
		`SELECT product FROM collection_entries WHERE collection = $1 ORDER BY position`,
		p.collection)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", p.collection, err)
	}
	defer rows.Close()

	var products []models.ProductInfo
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan collection entry: %w", err)
		}
		var product models.ProductInfo
		if err := json.Unmarshal(raw, &product); err != nil {
			return nil, fmt.Errorf("failed to decode collection entry: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (p *PostgresPersistence) Save(ctx context.Context, products []models.ProductInfo) error {
	return p.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM collection_entries WHERE collection = $1`, p.collection); err != nil {
			return fmt.Errorf("failed to clear collection %s: %w", p.collection, err)
		}

		for i, product := range products {
			raw, err := json.Marshal(product)
			if err != nil {
				return fmt.Errorf("failed to encode collection entry: %w", err)
			}
			if _, err := tx.Exec(ctx,
				`INSERT INTO collection_entries (collection, position, product) VALUES ($1, $2, $3)`,
				p.collection, i, raw); err != nil {
				return fmt.Errorf("failed to insert collection entry: %w", err)
			}
		}
		return nil
	})
}
