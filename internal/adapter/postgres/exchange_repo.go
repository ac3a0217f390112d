package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/ports"
)

// ExchangeRepository implements exchange persistence on PostgreSQL.
type ExchangeRepository struct {
	db *sql.DB
}

func NewExchangeRepository(db *sql.DB) ports.ExchangeRepository {
	return &ExchangeRepository{db: db}
}

func (r *ExchangeRepository) Append(ctx context.Context, exchange *domain.Exchange) error {
	query := `
        INSERT INTO exchanges (id, user_id, query, reply, provider, tokens, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `
	_, err := r.db.ExecContext(ctx, query,
		exchange.ID,
		exchange.UserID,
		exchange.Query,
		exchange.Reply,
		exchange.Provider,
		exchange.Tokens,
		exchange.CreatedAt,
	)
	if err != nil {
		return domain.NewStorageFailure("append exchange", err)
	}
	return nil
}

// buildFilter renders the optional filter conjunction shared by List's
// count and select queries. From and To are both inclusive.
func buildFilter(filter domain.ExchangeFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.Provider != "" {
		args = append(args, filter.Provider)
		conditions = append(conditions, fmt.Sprintf("provider = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *ExchangeRepository) List(ctx context.Context, filter domain.ExchangeFilter, page domain.Page) (*domain.ExchangePage, error) {
	page = page.Normalize()
	where, args := buildFilter(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM exchanges" + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, domain.NewStorageFailure("count exchanges", err)
	}

	selectQuery := fmt.Sprintf(`
        SELECT id, user_id, query, reply, provider, tokens, created_at
        FROM exchanges%s
        ORDER BY created_at DESC
        LIMIT $%d OFFSET $%d
    `, where, len(args)+1, len(args)+2)
	args = append(args, page.Size, page.Offset())

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, domain.NewStorageFailure("list exchanges", err)
	}
	defer rows.Close()

	items := make([]*domain.Exchange, 0, page.Size)
	for rows.Next() {
		var ex domain.Exchange
		if err := rows.Scan(&ex.ID, &ex.UserID, &ex.Query, &ex.Reply, &ex.Provider, &ex.Tokens, &ex.CreatedAt); err != nil {
			return nil, domain.NewStorageFailure("scan exchange", err)
		}
		items = append(items, &ex)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure("iterate exchanges", err)
	}

	return &domain.ExchangePage{
		Items:  items,
		Total:  total,
		Number: page.Number,
		Size:   page.Size,
		Pages:  domain.PageCount(total, page.Size),
	}, nil
}

func (r *ExchangeRepository) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM exchanges WHERE created_at >= $1", since,
	).Scan(&count)
	if err != nil {
		return 0, domain.NewStorageFailure("count exchanges since", err)
	}
	return count, nil
}

func (r *ExchangeRepository) ProviderStatsSince(ctx context.Context, since time.Time) ([]domain.ProviderStat, error) {
	query := `
        SELECT provider, COUNT(*), COALESCE(SUM(tokens), 0)
        FROM exchanges
        WHERE created_at >= $1
        GROUP BY provider
        ORDER BY provider
    `
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, domain.NewStorageFailure("provider stats", err)
	}
	defer rows.Close()

	var stats []domain.ProviderStat
	for rows.Next() {
		var s domain.ProviderStat
		if err := rows.Scan(&s.Provider, &s.Count, &s.TotalTokens); err != nil {
			return nil, domain.NewStorageFailure("scan provider stat", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure("iterate provider stats", err)
	}
	return stats, nil
}

func (r *ExchangeRepository) DailyActivitySince(ctx context.Context, since time.Time) ([]domain.DailyCount, error) {
	query := `
        SELECT to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, COUNT(*)
        FROM exchanges
        WHERE created_at >= $1
        GROUP BY day
        ORDER BY day ASC
    `
	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, domain.NewStorageFailure("daily activity", err)
	}
	defer rows.Close()

	var activity []domain.DailyCount
	for rows.Next() {
		var d domain.DailyCount
		if err := rows.Scan(&d.Date, &d.Count); err != nil {
			return nil, domain.NewStorageFailure("scan daily count", err)
		}
		activity = append(activity, d)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageFailure("iterate daily activity", err)
	}
	return activity, nil
}
