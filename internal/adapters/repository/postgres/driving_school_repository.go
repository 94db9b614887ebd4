package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
	pgdb "github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/db/postgres"
)

const foreignKeyViolationCode = "23503"

const drivingSchoolColumns = `id, fingerprint, company_id, name, street, city, zip_code, country, phone, email, opening_hours, created_at, updated_at`

const (
	insertDrivingSchoolQuery = `
        INSERT INTO driving_schools (` + drivingSchoolColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
        RETURNING ` + drivingSchoolColumns

	selectDrivingSchoolByIDQuery = `
        SELECT ` + drivingSchoolColumns + `
          FROM driving_schools
         WHERE id = $1
         LIMIT 1`

	selectDrivingSchoolsByCompanyQuery = `
        SELECT ` + drivingSchoolColumns + `
          FROM driving_schools
         WHERE company_id = $1
         ORDER BY created_at, id`
)

// DrivingSchoolRepository は PostgreSQL を利用した教習所永続化の実装です。
type DrivingSchoolRepository struct {
	pool pgdb.Queryer
}

// NewDrivingSchoolRepository は DrivingSchoolRepository を生成します。
func NewDrivingSchoolRepository(pool pgdb.Queryer) *DrivingSchoolRepository {
	return &DrivingSchoolRepository{pool: pool}
}

// Create は教習所を新規作成します。company_id の外部キー違反は ErrCompanyNotFound に変換します。
func (r *DrivingSchoolRepository) Create(ctx context.Context, school *drivingschool.DrivingSchool) (*drivingschool.DrivingSchool, error) {
	d := school.Data()
	hours, err := json.Marshal(d.OpeningHours)
	if err != nil {
		return nil, fmt.Errorf("postgres: encode opening hours: %w", err)
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, insertDrivingSchoolQuery,
		string(d.ID), string(d.Fingerprint), string(d.CompanyID), d.Name,
		d.Address.Street, d.Address.City, d.Address.ZipCode, d.Address.Country,
		d.Phone, d.Email, hours, d.CreatedAt, d.UpdatedAt,
	)

	created, err := scanDrivingSchool(row)
	if err != nil {
		return nil, translateDrivingSchoolPgError(err)
	}
	return created, nil
}

// FindByID は ID で教習所を取得します。
func (r *DrivingSchoolRepository) FindByID(ctx context.Context, id drivingschool.ID) (*drivingschool.DrivingSchool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	return scanDrivingSchool(exec.QueryRow(ctx, selectDrivingSchoolByIDQuery, string(id)))
}

// FindByCompany は会社に属する教習所を作成順に取得します。
func (r *DrivingSchoolRepository) FindByCompany(ctx context.Context, companyID company.ID) ([]*drivingschool.DrivingSchool, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, selectDrivingSchoolsByCompanyQuery, string(companyID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schools := make([]*drivingschool.DrivingSchool, 0)
	for rows.Next() {
		found, err := scanDrivingSchool(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, found)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return schools, nil
}

func scanDrivingSchool(row pgx.Row) (*drivingschool.DrivingSchool, error) {
	var (
		id, fingerprint, companyID string
		hours                      []byte
		d                          drivingschool.Data
		createdAt, updatedAt       time.Time
	)

	if err := row.Scan(
		&id, &fingerprint, &companyID, &d.Name,
		&d.Address.Street, &d.Address.City, &d.Address.ZipCode, &d.Address.Country,
		&d.Phone, &d.Email, &hours, &createdAt, &updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, drivingschool.ErrNotFound
		}
		return nil, err
	}

	if len(hours) > 0 {
		if err := json.Unmarshal(hours, &d.OpeningHours); err != nil {
			return nil, fmt.Errorf("postgres: decode opening hours of %s: %w", id, err)
		}
	}

	d.ID = drivingschool.ID(id)
	d.Fingerprint = drivingschool.Fingerprint(fingerprint)
	d.CompanyID = company.ID(companyID)
	d.CreatedAt = createdAt.UTC()
	d.UpdatedAt = updatedAt.UTC()

	school, err := drivingschool.FromData(d)
	if err != nil {
		return nil, fmt.Errorf("postgres: decode driving school %s: %w", id, err)
	}
	return school, nil
}

func translateDrivingSchoolPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == foreignKeyViolationCode {
			return drivingschool.ErrCompanyNotFound
		}
	}
	return err
}
