package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

var userColumnNames = []string{"id", "name", "email", "role", "related_company"}

func TestScanUser_NoRows(t *testing.T) {
	t.Parallel()

	row := stubRow{scanFn: func(dest ...interface{}) error {
		return pgx.ErrNoRows
	}}

	if _, err := scanUser(row); !errors.Is(err, user.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepository_Create_StudentWithoutCompany(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(upsertUserQuery)).
		WithArgs("student-1", "Student", "student@example.com", "student", nil).
		WillReturnRows(pgxmock.NewRows(userColumnNames).AddRow("student-1", "Student", "student@example.com", "student", nil))

	student, err := user.NewStudent("student-1", "Student", "student@example.com")
	if err != nil {
		t.Fatalf("NewStudent error: %v", err)
	}

	repo := NewUserRepository(mock)
	created, err := repo.Create(context.Background(), student)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if created.Role() != user.RoleStudent || created.RelatedCompany() != "" {
		t.Fatalf("unexpected user %+v", created.Data())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserRepository_FindByID(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDQuery)).
		WithArgs("director-1").
		WillReturnRows(pgxmock.NewRows(userColumnNames).AddRow("director-1", "Director", "director@example.com", "director", "company-1"))

	repo := NewUserRepository(mock)
	found, err := repo.FindByID(context.Background(), "director-1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}

	if !user.IsDirector(found) || found.RelatedCompany() != "company-1" {
		t.Fatalf("unexpected user %+v", found.Data())
	}
}

func TestUserRepository_FindByID_UnknownRole(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(selectUserByIDQuery)).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows(userColumnNames).AddRow("user-1", "User", "user@example.com", "janitor", nil))

	repo := NewUserRepository(mock)
	if _, err := repo.FindByID(context.Background(), "user-1"); !errors.Is(err, user.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}
