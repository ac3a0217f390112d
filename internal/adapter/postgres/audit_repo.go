package postgres

import (
	"context"
	"database/sql"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/ports"
)

// AuditRepository implements the append-only audit trail on PostgreSQL.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) ports.AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Record(ctx context.Context, entry *domain.AuditEntry) error {
	query := `
        INSERT INTO audit_entries (id, action_type, performed_by, details, created_at)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		string(entry.ActionType),
		entry.PerformedBy,
		entry.Details,
		entry.CreatedAt,
	)
	if err != nil {
		return domain.NewStorageFailure("record audit entry", err)
	}
	return nil
}
