package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/askgate/askgate/internal/domain"
	"github.com/askgate/askgate/internal/ports"
)

// UserRepository implements user persistence on PostgreSQL.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) ports.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
        INSERT INTO users (id, email, name, password_hash, role, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		string(user.Role),
		user.CreatedAt,
	)
	if err != nil {
		return domain.NewStorageFailure("create user", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findBy(ctx, "id = $1", id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findBy(ctx, "email = $1", email)
}

func (r *UserRepository) findBy(ctx context.Context, condition string, arg interface{}) (*domain.User, error) {
	query := `
        SELECT id, email, name, password_hash, role, created_at
        FROM users
        WHERE ` + condition
	var user domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.NewNotFound("user not found")
		}
		return nil, domain.NewStorageFailure("find user", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context, page domain.Page) ([]*domain.User, int, error) {
	page = page.Normalize()

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, domain.NewStorageFailure("count users", err)
	}

	query := `
        SELECT id, email, name, password_hash, role, created_at
        FROM users
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2
    `
	rows, err := r.db.QueryContext(ctx, query, page.Size, page.Offset())
	if err != nil {
		return nil, 0, domain.NewStorageFailure("list users", err)
	}
	defer rows.Close()

	users := make([]*domain.User, 0, page.Size)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.CreatedAt); err != nil {
			return nil, 0, domain.NewStorageFailure("scan user", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, domain.NewStorageFailure("iterate users", err)
	}
	return users, total, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return domain.NewStorageFailure("delete user", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.NewStorageFailure("delete user", err)
	}
	if affected == 0 {
		return domain.NewNotFound("user not found")
	}
	return nil
}

func (r *UserRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE created_at >= $1", since,
	).Scan(&count)
	if err != nil {
		return 0, domain.NewStorageFailure("count users since", err)
	}
	return count, nil
}
