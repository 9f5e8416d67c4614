package repository

import (
	"context"
	"fmt"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var _ interfaces.CollectionRepository = (*pgCollectionRepository)(nil)

// pgCollectionRepository serves both the cart and favourites tables, which
// share one shape.
type pgCollectionRepository struct {
	store
	collection models.Collection

	addQuery    string
	listQuery   string
	removeQuery string
}

// NewPgCollectionRepository creates a repository for the given collection table.
func NewPgCollectionRepository(db interfaces.DBTX, collection models.Collection, logger *zap.Logger, opts Options) (interfaces.CollectionRepository, error) {
	if !collection.Valid() {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	table := string(collection)

	return &pgCollectionRepository{
		store:      newStore(db, logger.Named("PgCollectionRepo").With(zap.String("collection", table)), opts),
		collection: collection,
		// re-adding is a no-op that returns the existing entry
		addQuery: `INSERT INTO ` + table + ` (id_user, id_product) VALUES ($1, $2)
			ON CONFLICT (id_user, id_product) DO UPDATE SET id_user = EXCLUDED.id_user
			RETURNING id, id_user, id_product, created_at`,
		listQuery: `SELECT c.id AS entry_id, c.created_at AS added_at, ` + productColumns + `
			FROM ` + table + ` c
			JOIN products p ON p.id_product = c.id_product
			LEFT JOIN images i ON i.id_product = p.id_product
			WHERE c.id_user = $1 AND p.approved
			GROUP BY c.id, p.id_product
			ORDER BY c.created_at, c.id`,
		removeQuery: `DELETE FROM ` + table + ` WHERE id = $1 AND id_user = $2`,
	}, nil
}

func (r *pgCollectionRepository) Add(ctx context.Context, userID, productID int64) (*models.CollectionEntry, error) {
	var entry models.CollectionEntry
	err := r.write(ctx, "add collection entry", models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &entry, r.addQuery, userID, productID)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("Collection entry stored", zap.Int64("entryID", entry.ID), zap.Int64("userID", userID), zap.Int64("productID", productID))
	return &entry, nil
}

func (r *pgCollectionRepository) ListByUser(ctx context.Context, userID int64) ([]models.CollectionItem, error) {
	items := make([]models.CollectionItem, 0)
	err := r.read(ctx, "list collection", models.ErrEntryNotFound, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.db, &items, r.listQuery, userID)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *pgCollectionRepository) Remove(ctx context.Context, entryID, userID int64) error {
	return r.execAffecting(ctx, "remove collection entry", models.ErrEntryNotFound, r.removeQuery, entryID, userID)
}
