package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	pgdb "github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/db/postgres"
)

const (
	upsertUserQuery = `
        INSERT INTO users (id, name, email, role, related_company)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE
           SET name = EXCLUDED.name,
               email = EXCLUDED.email,
               role = EXCLUDED.role,
               related_company = EXCLUDED.related_company
        RETURNING id, name, email, role, related_company`

	selectUserByIDQuery = `
        SELECT id, name, email, role, related_company
          FROM users
         WHERE id = $1
         LIMIT 1`
)

// UserRepository は PostgreSQL を利用したユーザー永続化の実装です。
type UserRepository struct {
	pool pgdb.Queryer
}

// NewUserRepository は UserRepository を生成します。
func NewUserRepository(pool pgdb.Queryer) *UserRepository {
	return &UserRepository{pool: pool}
}

// Create はユーザーを登録します。同じ ID が存在する場合は上書きします。
func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	d := u.Data()
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, upsertUserQuery, d.ID, d.Name, d.Email, string(d.Role), nullableString(d.RelatedCompany))
	return scanUser(row)
}

// FindByID はIDでユーザーを取得します。
func (r *UserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	return scanUser(exec.QueryRow(ctx, selectUserByIDQuery, id))
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		id, name, email, role string
		relatedCompany        sql.NullString
	)

	if err := row.Scan(&id, &name, &email, &role, &relatedCompany); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, err
	}

	parsed, err := user.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("postgres: decode user %s: %w", id, err)
	}

	u, err := user.New(id, name, email, parsed, relatedCompany.String)
	if err != nil {
		return nil, fmt.Errorf("postgres: decode user %s: %w", id, err)
	}
	return u, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
