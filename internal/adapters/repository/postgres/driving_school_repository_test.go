package postgres

import (
	"context"
	"errors"
	"reflect"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var drivingSchoolColumnNames = []string{"id", "fingerprint", "company_id", "name", "street", "city", "zip_code", "country", "phone", "email", "opening_hours", "created_at", "updated_at"}

const storedOpeningHours = `{"friday":[],"monday":["08:00","18:00"],"saturday":[],"sunday":[],"thursday":[],"tuesday":[],"wednesday":[]}`

func sampleDrivingSchool(t *testing.T, id drivingschool.ID, at time.Time) *drivingschool.DrivingSchool {
	t.Helper()
	s, err := drivingschool.FromData(drivingschool.Data{
		ID:           id,
		Fingerprint:  "fingerprint-1",
		CompanyID:    "company-1",
		Name:         "Crenauto Paris",
		Address:      contact.Address{Street: "123 Crenauto Street", City: "Paris", ZipCode: "75001", Country: "France"},
		Phone:        "+33.612345678",
		Email:        "paris@crenauto.com",
		OpeningHours: drivingschool.OpeningHours{drivingschool.Monday: {"08:00", "18:00"}},
		CreatedAt:    at,
		UpdatedAt:    at,
	})
	if err != nil {
		t.Fatalf("FromData error: %v", err)
	}
	return s
}

func drivingSchoolRow(rows *pgxmock.Rows, id string, at time.Time) *pgxmock.Rows {
	return rows.AddRow(id, "fingerprint-1", "company-1", "Crenauto Paris", "123 Crenauto Street", "Paris", "75001", "France", "+33.612345678", "paris@crenauto.com", []byte(storedOpeningHours), at, at)
}

func TestDrivingSchoolRepository_Create(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Date(2024, 7, 19, 1, 35, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(insertDrivingSchoolQuery)).
		WithArgs("school-1", "fingerprint-1", "company-1", "Crenauto Paris", "123 Crenauto Street", "Paris", "75001", "France", "+33.612345678", "paris@crenauto.com", []byte(storedOpeningHours), now, now).
		WillReturnRows(drivingSchoolRow(pgxmock.NewRows(drivingSchoolColumnNames), "school-1", now))

	repo := NewDrivingSchoolRepository(mock)
	school := sampleDrivingSchool(t, "school-1", now)
	created, err := repo.Create(context.Background(), school)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if !reflect.DeepEqual(created.Data(), school.Data()) {
		t.Fatalf("expected %+v, got %+v", school.Data(), created.Data())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDrivingSchoolRepository_Create_UnknownCompany(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(insertDrivingSchoolQuery)).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{Code: foreignKeyViolationCode})

	repo := NewDrivingSchoolRepository(mock)
	if _, err := repo.Create(context.Background(), sampleDrivingSchool(t, "school-1", time.Now().UTC())); !errors.Is(err, drivingschool.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestDrivingSchoolRepository_FindByID_NotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectDrivingSchoolByIDQuery)).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(drivingSchoolColumnNames))

	repo := NewDrivingSchoolRepository(mock)
	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, drivingschool.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDrivingSchoolRepository_FindByCompany(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows(drivingSchoolColumnNames)
	drivingSchoolRow(rows, "school-1", now)
	drivingSchoolRow(rows, "school-3", now)

	mock.ExpectQuery(regexp.QuoteMeta(selectDrivingSchoolsByCompanyQuery)).
		WithArgs("company-1").
		WillReturnRows(rows)

	repo := NewDrivingSchoolRepository(mock)
	schools, err := repo.FindByCompany(context.Background(), "company-1")
	if err != nil {
		t.Fatalf("FindByCompany returned error: %v", err)
	}

	if len(schools) != 2 || schools[0].ID() != "school-1" || schools[1].ID() != "school-3" {
		t.Fatalf("unexpected schools: %d", len(schools))
	}

	if got := schools[0].Data().OpeningHours[drivingschool.Monday]; len(got) != 2 || got[0] != "08:00" {
		t.Fatalf("unexpected opening hours %v", got)
	}
}

func TestScanDrivingSchool_BrokenOpeningHours(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		*(dest[0].(*string)) = "school-1"
		*(dest[8].(*string)) = "+33.612345678"
		*(dest[9].(*string)) = "paris@crenauto.com"
		*(dest[10].(*[]byte)) = []byte(`{"monday":"08:00"}`)
		return nil
	}}

	if _, err := scanDrivingSchool(row); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTranslateDrivingSchoolPgError(t *testing.T) {
	t.Parallel()

	if !errors.Is(translateDrivingSchoolPgError(&pgconn.PgError{Code: foreignKeyViolationCode}), drivingschool.ErrCompanyNotFound) {
		t.Fatalf("expected foreign key violation mapping")
	}

	otherErr := errors.New("random")
	if translateDrivingSchoolPgError(otherErr) != otherErr {
		t.Fatalf("unexpected translation for generic error")
	}
}
