package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/apperrors"
	"github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/domain"
	portsrepo "github.com/serkanardahanli/flowqi-forecasting-app-sub001/internal/core/ports/repositories"
)

type PgxProductRepository struct {
	BaseRepository
}

func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepository {
	return &PgxProductRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProductRepository = (*PgxProductRepository)(nil)

const selectProductQuery = `
SELECT product_id, organization_id, name, description, unit_price, unit_cost, is_active,
	created_at, created_by, last_updated_at, last_updated_by
FROM products
`

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ProductID, &p.OrganizationID, &p.Name, &p.Description, &p.UnitPrice, &p.UnitCost, &p.IsActive,
		&p.CreatedAt, &p.CreatedBy, &p.LastUpdatedAt, &p.LastUpdatedBy,
	)
	return p, err
}

func (r *PgxProductRepository) SaveProduct(ctx context.Context, p domain.Product) error {
	query := `
		INSERT INTO products (product_id, organization_id, name, description, unit_price, unit_cost, is_active,
			created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		p.ProductID, p.OrganizationID, p.Name, p.Description, p.UnitPrice, p.UnitCost, p.IsActive,
		p.CreatedAt, p.CreatedBy, p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to save product "+p.ProductID, err)
	}
	return nil
}

func (r *PgxProductRepository) FindProductByID(ctx context.Context, organizationID, productID string) (*domain.Product, error) {
	p, err := scanProduct(r.Pool.QueryRow(ctx, selectProductQuery+"WHERE organization_id = $1 AND product_id = $2;", organizationID, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("product not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find product "+productID, err)
	}
	return &p, nil
}

func (r *PgxProductRepository) ListProducts(ctx context.Context, organizationID string, activeOnly bool) ([]domain.Product, error) {
	filter := "WHERE organization_id = $1"
	if activeOnly {
		filter += " AND is_active = TRUE"
	}
	rows, err := r.Pool.Query(ctx, selectProductQuery+filter+" ORDER BY name;", organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate products", err)
	}
	return products, nil
}

func (r *PgxProductRepository) UpdateProduct(ctx context.Context, p domain.Product) error {
	query := `
		UPDATE products SET
			name = $3, description = $4, unit_price = $5, unit_cost = $6, is_active = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE organization_id = $1 AND product_id = $2;
	`
	tag, err := r.Pool.Exec(ctx, query,
		p.OrganizationID, p.ProductID, p.Name, p.Description, p.UnitPrice, p.UnitCost, p.IsActive,
		p.LastUpdatedAt, p.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+p.ProductID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("product not found")
	}
	return nil
}
