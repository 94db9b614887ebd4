package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	pgdb "github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/db/postgres"
)

const companyColumns = `id, fingerprint, name, street, city, zip_code, country, legal_status, phone, email, created_at, updated_at`

const (
	insertCompanyQuery = `
        INSERT INTO companies (` + companyColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + companyColumns

	updateCompanyQuery = `
        UPDATE companies
           SET name = $1,
               street = $2,
               city = $3,
               zip_code = $4,
               country = $5,
               legal_status = $6,
               phone = $7,
               email = $8,
               updated_at = $9
         WHERE id = $10
        RETURNING ` + companyColumns

	selectCompanyByIDQuery = `
        SELECT ` + companyColumns + `
          FROM companies
         WHERE id = $1
         LIMIT 1`

	selectCompaniesQuery = `
        SELECT ` + companyColumns + `
          FROM companies
         ORDER BY created_at DESC, id DESC`

	deleteCompanyQuery = `DELETE FROM companies WHERE id = $1`
)

// CompanyRepository は PostgreSQL を利用した会社永続化の実装です。
type CompanyRepository struct {
	pool pgdb.Queryer
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(pool pgdb.Queryer) *CompanyRepository {
	return &CompanyRepository{pool: pool}
}

// Create は会社を新規作成します。
func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) (*company.Company, error) {
	d := c.Data()
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, insertCompanyQuery,
		string(d.ID), string(d.Fingerprint), d.Name,
		d.Address.Street, d.Address.City, d.Address.ZipCode, d.Address.Country,
		d.LegalStatus, d.Contact.Phone, d.Contact.Email, d.CreatedAt, d.UpdatedAt,
	)
	return scanCompany(row)
}

// Edit は会社情報を置き換えます。ID と作成日時は変更しません。
func (r *CompanyRepository) Edit(ctx context.Context, id company.ID, c *company.Company) (*company.Company, error) {
	d := c.Data()
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, updateCompanyQuery,
		d.Name,
		d.Address.Street, d.Address.City, d.Address.ZipCode, d.Address.Country,
		d.LegalStatus, d.Contact.Phone, d.Contact.Email, d.UpdatedAt, string(id),
	)
	return scanCompany(row)
}

// FindByID は ID で会社を取得します。
func (r *CompanyRepository) FindByID(ctx context.Context, id company.ID) (*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	return scanCompany(exec.QueryRow(ctx, selectCompanyByIDQuery, string(id)))
}

// FindAll はすべての会社を取得します。
func (r *CompanyRepository) FindAll(ctx context.Context) ([]*company.Company, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, selectCompaniesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	companies := make([]*company.Company, 0)
	for rows.Next() {
		found, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		companies = append(companies, found)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return companies, nil
}

// Delete は会社を削除します。対象が存在しなくてもエラーにしません。
func (r *CompanyRepository) Delete(ctx context.Context, id company.ID) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	_, err := exec.Exec(ctx, deleteCompanyQuery, string(id))
	return err
}

func scanCompany(row pgx.Row) (*company.Company, error) {
	var (
		id, fingerprint      string
		d                    company.Data
		createdAt, updatedAt time.Time
	)

	if err := row.Scan(
		&id, &fingerprint, &d.Name,
		&d.Address.Street, &d.Address.City, &d.Address.ZipCode, &d.Address.Country,
		&d.LegalStatus, &d.Contact.Phone, &d.Contact.Email, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, company.ErrNotFound
		}
		return nil, err
	}
	d.ID = company.ID(id)
	d.Fingerprint = company.Fingerprint(fingerprint)
	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()

	c, err := company.FromData(d)
	if err != nil {
		return nil, fmt.Errorf("postgres: decode company %s: %w", id, err)
	}
	return c, nil
}
