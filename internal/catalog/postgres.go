package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/scholarlink/recommender/internal/errors"
	"github.com/scholarlink/recommender/model"
)

// PostgresCatalog reads students and offers stored as JSONB documents.
// Rows are ordered by insertion so the ranked result's tie-break order is
// deterministic across fetches.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresPool creates and verifies a pgxpool connection pool.
func NewPostgresPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}

	return pool, nil
}

// NewPostgresCatalog creates a catalog over an existing pool.
func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

// GetStudent fetches one student document by id.
func (c *PostgresCatalog) GetStudent(ctx context.Context, id string) (model.Student, error) {
	var raw []byte
	err := c.pool.QueryRow(ctx, `SELECT doc FROM students WHERE id = $1`, id).Scan(&raw)
	if err == pgx.ErrNoRows {
		return model.Student{}, errors.NewStudentNotFoundError(id)
	}
	if err != nil {
		return model.Student{}, errors.NewCatalogUnavailableError("postgres", err)
	}

	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Student{}, fmt.Errorf("decoding student '%s': %w", id, err)
	}
	return model.StudentFromDocument(id, doc), nil
}

// GetAllOffers fetches the full offer catalog. A row whose document fails to
// decode is logged and skipped; one corrupt record never aborts the batch.
func (c *PostgresCatalog) GetAllOffers(ctx context.Context) ([]model.Offer, error) {
	rows, err := c.pool.Query(ctx, `SELECT id, doc FROM offers ORDER BY inserted_at, id`)
	if err != nil {
		return nil, errors.NewCatalogUnavailableError("postgres", err)
	}
	defer rows.Close()

	var offers []model.Offer
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, errors.NewCatalogUnavailableError("postgres", err)
		}

		var doc model.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			logrus.WithFields(logrus.Fields{
				"component": "catalog",
				"offer_id":  id,
			}).Warnf("Skipping undecodable offer document: %v", err)
			continue
		}
		offers = append(offers, model.OfferFromDocument(id, doc))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewCatalogUnavailableError("postgres", err)
	}

	return offers, nil
}

// GetOffer fetches one offer document by id.
func (c *PostgresCatalog) GetOffer(ctx context.Context, id string) (model.Offer, error) {
	var raw []byte
	err := c.pool.QueryRow(ctx, `SELECT doc FROM offers WHERE id = $1`, id).Scan(&raw)
	if err == pgx.ErrNoRows {
		return model.Offer{}, errors.NewOfferNotFoundError(id)
	}
	if err != nil {
		return model.Offer{}, errors.NewCatalogUnavailableError("postgres", err)
	}

	var doc model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Offer{}, fmt.Errorf("decoding offer '%s': %w", id, err)
	}
	return model.OfferFromDocument(id, doc), nil
}
