package provider

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

type Repository interface {
	List(ctx context.Context, f Filter) ([]Provider, error)
}

type postgresRepo struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &postgresRepo{db: db}
}

func (r *postgresRepo) List(ctx context.Context, f Filter) ([]Provider, error) {
	query := `
		SELECT id, name, specialty, rating, review_count, distance, address,
		       phone, accepts_insurance, next_available, languages,
		       education, experience
		FROM providers
		WHERE ($1 = '' OR specialty = $1)
		  AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR specialty ILIKE '%' || $2 || '%')
		ORDER BY rating DESC, review_count DESC
	`
	rows, err := r.db.QueryContext(ctx, query, f.Specialty, f.Query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Specialty, &p.Rating, &p.ReviewCount,
			&p.Distance, &p.Address, &p.Phone, &p.AcceptsInsurance,
			&p.NextAvailable, pq.Array(&p.Languages), &p.Education, &p.Experience,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
