package repository

import (
	"context"
	"strings"

	"marketplace-server/internal/interfaces"
	"marketplace-server/internal/models"
	"marketplace-server/internal/patch"

	"github.com/georgysavva/scany/v2/pgxscan"
	"go.uber.org/zap"
)

var _ interfaces.ProductRepository = (*pgProductRepository)(nil)

// Product reads left-join images and fold them into a never-null text[].
const (
	productColumns = `p.id_product, p.name, p.description, p.category, p.model, p.condition,
		p.price::float8 AS price, p.approved, p.id_user, p.created_at,
		COALESCE(array_agg(i.link ORDER BY i.id_image) FILTER (WHERE i.link IS NOT NULL), '{}') AS images`
	productFrom  = ` FROM products p LEFT JOIN images i ON i.id_product = p.id_product`
	productGroup = ` GROUP BY p.id_product`

	selectProducts = `SELECT ` + productColumns + productFrom

	getProductByIDQuery          = selectProducts + ` WHERE p.id_product = $1` + productGroup
	getApprovedProductByIDQuery  = selectProducts + ` WHERE p.id_product = $1 AND p.approved` + productGroup
	listProductsQuery            = selectProducts + productGroup + ` ORDER BY p.id_product`
	listApprovedProductsQuery    = selectProducts + ` WHERE p.approved` + productGroup + ` ORDER BY p.id_product`
	listProductsByCategoryQuery  = selectProducts + ` WHERE p.category = $1 AND p.approved` + productGroup + ` ORDER BY p.id_product`
	listProductsByOwnerQuery     = selectProducts + ` WHERE p.id_user = $1 AND (p.approved OR NOT $2::boolean)` + productGroup + ` ORDER BY p.id_product`
	deleteProductQuery           = `DELETE FROM products WHERE id_product = $1`
	deleteOwnedProductQuery      = `DELETE FROM products WHERE id_product = $1 AND id_user = $2`
	createProductQuery           = `
		INSERT INTO products (name, description, category, model, condition, price, approved, id_user)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7)
		RETURNING id_product, name, description, category, model, condition, price::float8 AS price,
			approved, id_user, created_at, '{}'::text[] AS images`

	// score: name 4, tag 2, category or model 2, description 1
	searchProductsQuery = `
		SELECT * FROM (
			SELECT ` + productColumns + `,
				(CASE WHEN p.name ILIKE $1 THEN 4 ELSE 0 END
				 + CASE WHEN EXISTS (SELECT 1 FROM tags t WHERE t.id_product = p.id_product AND t.name ILIKE $1) THEN 2 ELSE 0 END
				 + CASE WHEN p.category ILIKE $1 OR p.model ILIKE $1 THEN 2 ELSE 0 END
				 + CASE WHEN p.description ILIKE $1 THEN 1 ELSE 0 END) AS score
			` + productFrom + `
			WHERE p.approved` + productGroup + `
		) ranked
		WHERE ranked.score > 0
		ORDER BY ranked.score DESC, ranked.id_product
		LIMIT $2 OFFSET $3`
)

// updatedProductQuery wraps an UPDATE ... RETURNING * so the result carries images.
func updatedProductQuery(update string) string {
	return `WITH u AS (` + update + `)
		SELECT u.id_product, u.name, u.description, u.category, u.model, u.condition,
			u.price::float8 AS price, u.approved, u.id_user, u.created_at,
			COALESCE((SELECT array_agg(i.link ORDER BY i.id_image) FROM images i WHERE i.id_product = u.id_product), '{}') AS images
		FROM u`
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching term anywhere.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

type pgProductRepository struct {
	store
}

// NewPgProductRepository creates a PostgreSQL-backed ProductRepository.
func NewPgProductRepository(db interfaces.DBTX, logger *zap.Logger, opts Options) interfaces.ProductRepository {
	return &pgProductRepository{store: newStore(db, logger.Named("PgProductRepo"), opts)}
}

func (r *pgProductRepository) getOne(ctx context.Context, op, query string, args ...any) (*models.Product, error) {
	var p models.Product
	err := r.read(ctx, op, models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &p, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgProductRepository) list(ctx context.Context, op, query string, args ...any) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := r.read(ctx, op, models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.db, &products, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *pgProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return r.getOne(ctx, "get product by id", getProductByIDQuery, id)
}

func (r *pgProductRepository) GetApprovedByID(ctx context.Context, id int64) (*models.Product, error) {
	return r.getOne(ctx, "get approved product by id", getApprovedProductByIDQuery, id)
}

func (r *pgProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, "list products", listProductsQuery)
}

func (r *pgProductRepository) ListApproved(ctx context.Context) ([]models.Product, error) {
	return r.list(ctx, "list approved products", listApprovedProductsQuery)
}

func (r *pgProductRepository) ListApprovedByCategory(ctx context.Context, category string) ([]models.Product, error) {
	return r.list(ctx, "list products by category", listProductsByCategoryQuery, category)
}

func (r *pgProductRepository) ListByOwner(ctx context.Context, ownerID int64, approvedOnly bool) ([]models.Product, error) {
	return r.list(ctx, "list products by owner", listProductsByOwnerQuery, ownerID, approvedOnly)
}

func (r *pgProductRepository) Search(ctx context.Context, term string, page models.Page) ([]models.SearchResult, error) {
	page = page.Normalize()
	results := make([]models.SearchResult, 0)
	err := r.read(ctx, "search products", models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.db, &results, searchProductsQuery, containsPattern(term), page.Limit, page.Offset)
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *pgProductRepository) Create(ctx context.Context, np models.NewProduct) (*models.Product, error) {
	var p models.Product
	err := r.write(ctx, "create product", models.ErrUserNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &p, createProductQuery,
			np.Name, np.Description, np.Category, np.Model, np.Condition, np.Price, np.OwnerID)
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("Product created", zap.Int64("productID", p.ID), zap.Int64("ownerID", p.OwnerID))
	return &p, nil
}

func (r *pgProductRepository) update(ctx context.Context, op string, set *patch.Set, where ...patch.Cond) (*models.Product, error) {
	update, args, err := set.Build("products", "*", where...)
	if err != nil {
		return nil, err
	}
	var p models.Product
	err = r.write(ctx, op, models.ErrProductNotFound, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.db, &p, updatedProductQuery(update), args...)
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pgProductRepository) UpdateOwned(ctx context.Context, id, ownerID int64, set *patch.Set) (*models.Product, error) {
	p, err := r.update(ctx, "update product", set, patch.Eq("id_product", id), patch.Eq("id_user", ownerID))
	if err != nil {
		return nil, err
	}
	r.logger.Info("Product updated", zap.Int64("productID", id), zap.Strings("columns", set.Columns()))
	return p, nil
}

func (r *pgProductRepository) SetApproved(ctx context.Context, id int64, approved bool) (*models.Product, error) {
	p, err := r.update(ctx, "set product approval", patch.New().Value("approved", approved), patch.Eq("id_product", id))
	if err != nil {
		return nil, err
	}
	r.logger.Info("Product approval changed", zap.Int64("productID", id), zap.Bool("approved", approved))
	return p, nil
}

func (r *pgProductRepository) Delete(ctx context.Context, id int64) error {
	if err := r.execAffecting(ctx, "delete product", models.ErrProductNotFound, deleteProductQuery, id); err != nil {
		return err
	}
	r.logger.Info("Product deleted", zap.Int64("productID", id))
	return nil
}

func (r *pgProductRepository) DeleteOwned(ctx context.Context, id, ownerID int64) error {
	if err := r.execAffecting(ctx, "delete owned product", models.ErrProductNotFound, deleteOwnedProductQuery, id, ownerID); err != nil {
		return err
	}
	r.logger.Info("Product deleted by owner", zap.Int64("productID", id), zap.Int64("ownerID", ownerID))
	return nil
}
