//go:build integration

package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	repo "github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/idgen"
)

const migrationsDir = "../assets/migrations"

func TestDrivingSchoolIntegration(t *testing.T) {
	cfg, err := config.Load(configPathFromEnv())
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Database.Require(); err != nil {
		t.Skipf("database is not configured: %v", err)
	}

	if err := resetMigrations(cfg.Database.DSN(), migrationsDir); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	pool, err := pg.NewPool(ctx, cfg.Database, nil)
	if err != nil {
		t.Fatalf("failed to create pool: %v", err)
	}
	t.Cleanup(pool.Close)

	tx := pg.NewTransactionManager(pool)
	clock := stubClock{now: time.Now().UTC().Truncate(time.Microsecond)}
	companySvc := company.NewService(repo.NewCompanyRepository(pool), idgen.UUID{}, clock, tx)
	schoolSvc := drivingschool.NewService(repo.NewDrivingSchoolRepository(pool), idgen.UUID{}, clock, tx)

	users := repo.NewUserRepository(pool)
	admin, err := user.NewAdmin("admin-1", "Admin", "super@admin.com")
	if err != nil {
		t.Fatalf("NewAdmin error: %v", err)
	}
	if _, err := users.Create(ctx, admin); err != nil {
		t.Fatalf("Create user error: %v", err)
	}

	created, err := companySvc.CreateACompany(ctx, admin, company.CreateCompanyInput{
		Name:        "Crenauto",
		Address:     contact.Address{Street: "123 Crenauto Street", City: "Paris", ZipCode: "75001", Country: "France"},
		LegalStatus: "SARL",
		Contact:     company.Contact{Phone: "+33.612345678", Email: "super@admin.com"},
	})
	if err != nil {
		t.Fatalf("CreateACompany error: %v", err)
	}

	school, err := schoolSvc.CreateADrivingSchool(ctx, admin, drivingschool.CreateDrivingSchoolInput{
		CompanyID:    created.ID(),
		Name:         "Crenauto Paris",
		Phone:        "+33.612345678",
		Email:        "paris@crenauto.com",
		OpeningHours: drivingschool.OpeningHours{drivingschool.Monday: {"08:00", "18:00"}},
	})
	if err != nil {
		t.Fatalf("CreateADrivingSchool error: %v", err)
	}

	view, err := schoolSvc.RetrieveADrivingSchool(ctx, admin, school.ID())
	if err != nil {
		t.Fatalf("RetrieveADrivingSchool error: %v", err)
	}
	full, ok := view.(drivingschool.AdminView)
	if !ok || full.OpeningHours[drivingschool.Monday][1] != "18:00" {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, err := schoolSvc.CreateADrivingSchool(ctx, admin, drivingschool.CreateDrivingSchoolInput{
		CompanyID: "00000000-0000-0000-0000-000000000000",
		Name:      "Orphan",
		Phone:     "+33.612345678",
		Email:     "orphan@crenauto.com",
	}); !errors.Is(err, drivingschool.ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}

	if _, err := companySvc.DeleteACompany(ctx, admin, company.DeleteCompanyInput{ID: created.ID()}); err != nil {
		t.Fatalf("DeleteACompany error: %v", err)
	}
	if _, err := schoolSvc.RetrieveADrivingSchool(ctx, admin, school.ID()); !errors.Is(err, drivingschool.ErrNotFound) {
		t.Fatalf("expected cascade delete, got %v", err)
	}
}

func resetMigrations(dsn, dir string) error {
	m, err := migrate.New("file://"+dir, dsn)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func configPathFromEnv() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return "../assets/local.yaml"
}

type stubClock struct {
	now time.Time
}

func (s stubClock) Now() time.Time {
	return s.now
}
