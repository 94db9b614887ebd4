package drivingschool

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
)

type stubClock struct {
	now time.Time
}

func (s *stubClock) Now() time.Time {
	return s.now
}

type stubIDs struct {
	seq int
}

func (s *stubIDs) Generate() string {
	s.seq++
	return fmt.Sprintf("school-%d", s.seq)
}

func (s *stubIDs) GenerateFingerprint() string {
	return fmt.Sprintf("fingerprint-%d", s.seq)
}

// fakeRepo は既知の会社 ID に対してのみ作成を受け付けます。
type fakeRepo struct {
	companies map[company.ID]struct{}
	schools   []*DrivingSchool
	failWith  error
}

func newFakeRepo(companyIDs ...company.ID) *fakeRepo {
	companies := make(map[company.ID]struct{}, len(companyIDs))
	for _, id := range companyIDs {
		companies[id] = struct{}{}
	}
	return &fakeRepo{companies: companies}
}

func (r *fakeRepo) Create(_ context.Context, school *DrivingSchool) (*DrivingSchool, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	if _, ok := r.companies[school.CompanyID()]; !ok {
		return nil, ErrCompanyNotFound
	}
	r.schools = append(r.schools, school)
	return school, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id ID) (*DrivingSchool, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	for _, school := range r.schools {
		if school.ID() == id {
			return school, nil
		}
	}
	return nil, ErrNotFound
}

func (r *fakeRepo) FindByCompany(_ context.Context, companyID company.ID) ([]*DrivingSchool, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var result []*DrivingSchool
	for _, school := range r.schools {
		if school.CompanyID() == companyID {
			result = append(result, school)
		}
	}
	return result, nil
}

func actorOf(t *testing.T, role user.Role, relatedCompany string) *user.User {
	t.Helper()
	u, err := user.New(string(role)+"-1", string(role), string(role)+"@example.com", role, relatedCompany)
	if err != nil {
		t.Fatalf("failed to build user: %v", err)
	}
	return u
}

func mustSchool(t *testing.T, id ID, companyID company.ID) *DrivingSchool {
	t.Helper()
	data := validData()
	data.ID = id
	data.CompanyID = companyID
	school, err := FromData(data)
	if err != nil {
		t.Fatalf("FromData error: %v", err)
	}
	return school
}

func validCreateInput(companyID company.ID) CreateDrivingSchoolInput {
	data := validData()
	return CreateDrivingSchoolInput{
		CompanyID:    companyID,
		Name:         data.Name,
		Address:      data.Address,
		Phone:        data.Phone,
		Email:        data.Email,
		OpeningHours: data.OpeningHours,
	}
}

func TestService_CreateADrivingSchool_ByAdmin(t *testing.T) {
	t.Parallel()

	clk := &stubClock{now: time.Date(2024, 7, 19, 1, 35, 0, 0, time.UTC)}
	repo := newFakeRepo("company-1")
	svc := NewService(repo, &stubIDs{}, clk, nil)
	admin := actorOf(t, user.RoleAdmin, "")

	created, err := svc.CreateADrivingSchool(context.Background(), admin, validCreateInput("company-1"))
	if err != nil {
		t.Fatalf("CreateADrivingSchool returned error: %v", err)
	}

	data := created.Data()
	if data.ID != "school-1" || data.Fingerprint != "fingerprint-1" || data.CompanyID != "company-1" {
		t.Fatalf("unexpected identifiers: %+v", data)
	}
	if !data.CreatedAt.Equal(clk.now) || !data.UpdatedAt.Equal(clk.now) {
		t.Fatalf("expected timestamps to use clock, got %v and %v", data.CreatedAt, data.UpdatedAt)
	}
	if len(repo.schools) != 1 {
		t.Fatalf("expected 1 stored school, got %d", len(repo.schools))
	}
}

func TestService_CreateADrivingSchool_DirectorIsForcedToOwnCompany(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo("company-1", "company-2")
	svc := NewService(repo, &stubIDs{}, &stubClock{now: time.Now()}, nil)
	director := actorOf(t, user.RoleDirector, "company-1")

	created, err := svc.CreateADrivingSchool(context.Background(), director, validCreateInput("company-2"))
	if err != nil {
		t.Fatalf("CreateADrivingSchool returned error: %v", err)
	}

	if created.CompanyID() != "company-1" {
		t.Fatalf("expected director company to be used, got %s", created.CompanyID())
	}
}

func TestService_CreateADrivingSchool_UnknownCompany(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo("company-1")
	svc := NewService(repo, &stubIDs{}, &stubClock{now: time.Now()}, nil)
	admin := actorOf(t, user.RoleAdmin, "")

	if _, err := svc.CreateADrivingSchool(context.Background(), admin, validCreateInput("company-9")); !errors.Is(err, ErrCompanyNotFound) {
		t.Fatalf("expected ErrCompanyNotFound, got %v", err)
	}
	if len(repo.schools) != 0 {
		t.Fatalf("expected nothing to be stored")
	}
}

func TestService_CreateADrivingSchool_NotAuthorized(t *testing.T) {
	t.Parallel()

	actors := []*user.User{
		actorOf(t, user.RoleExecutive, "company-1"),
		actorOf(t, user.RoleInstructor, "company-1"),
		actorOf(t, user.RoleStudent, ""),
		nil,
	}

	for _, actor := range actors {
		repo := newFakeRepo("company-1")
		svc := NewService(repo, &stubIDs{}, &stubClock{now: time.Now()}, nil)

		if _, err := svc.CreateADrivingSchool(context.Background(), actor, validCreateInput("company-1")); !errors.Is(err, ErrNotAuthorizedToCreateADrivingSchool) {
			t.Fatalf("expected ErrNotAuthorizedToCreateADrivingSchool, got %v", err)
		}
		if len(repo.schools) != 0 {
			t.Fatalf("expected nothing to be stored")
		}
	}
}

func TestService_CreateADrivingSchool_InvalidInput(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo("company-1")
	svc := NewService(repo, &stubIDs{}, &stubClock{now: time.Now()}, nil)
	admin := actorOf(t, user.RoleAdmin, "")

	in := validCreateInput("company-1")
	in.OpeningHours = OpeningHours{Monday: {"08:00"}}
	if _, err := svc.CreateADrivingSchool(context.Background(), admin, in); !errors.Is(err, ErrInvalidOpeningHours) {
		t.Fatalf("expected ErrInvalidOpeningHours, got %v", err)
	}

	boom := errors.New("connection reset")
	repo.failWith = boom
	if _, err := svc.CreateADrivingSchool(context.Background(), admin, validCreateInput("company-1")); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped repository error, got %v", err)
	}
}

func TestService_RetrieveADrivingSchool_ViewDependsOnRole(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo("company-1")
	repo.schools = []*DrivingSchool{mustSchool(t, "school-1", "company-1")}
	svc := NewService(repo, &stubIDs{}, &stubClock{now: time.Now()}, nil)

	admin := actorOf(t, user.RoleAdmin, "")
	view, err := svc.RetrieveADrivingSchool(context.Background(), admin, "school-1")
	if err != nil {
		t.Fatalf("RetrieveADrivingSchool returned error: %v", err)
	}
	if _, ok := view.(AdminView); !ok {
		t.Fatalf("expected AdminView, got %T", view)
	}

	// 別会社のユーザーでも取得できる
	student := actorOf(t, user.RoleStudent, "")
	instructor := actorOf(t, user.RoleInstructor, "company-2")
	for _, actor := range []*user.User{student, instructor} {
		view, err := svc.RetrieveADrivingSchool(context.Background(), actor, "school-1")
		if err != nil {
			t.Fatalf("RetrieveADrivingSchool returned error: %v", err)
		}
		public, ok := view.(PublicView)
		if !ok {
			t.Fatalf("expected PublicView, got %T", view)
		}
		if public.ID != "school-1" {
			t.Fatalf("unexpected id %s", public.ID)
		}
	}
}

func TestService_RetrieveADrivingSchool_Errors(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo(), &stubIDs{}, &stubClock{now: time.Now()}, nil)
	student := actorOf(t, user.RoleStudent, "")

	if _, err := svc.RetrieveADrivingSchool(context.Background(), student, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.RetrieveADrivingSchool(context.Background(), student, ""); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
	if _, err := svc.RetrieveADrivingSchool(context.Background(), nil, "school-1"); !errors.Is(err, ErrNotAuthorizedToRetrieveADrivingSchool) {
		t.Fatalf("expected ErrNotAuthorizedToRetrieveADrivingSchool, got %v", err)
	}
}

func TestService_RetrieveDrivingSchoolsOfACompany(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo("company-1", "company-2")
	repo.schools = []*DrivingSchool{
		mustSchool(t, "school-1", "company-1"),
		mustSchool(t, "school-2", "company-2"),
		mustSchool(t, "school-3", "company-1"),
	}
	svc := NewService(repo, &stubIDs{}, &stubClock{now: time.Now()}, nil)

	admin := actorOf(t, user.RoleAdmin, "")
	schools, err := svc.RetrieveDrivingSchoolsOfACompany(context.Background(), admin, "company-2")
	if err != nil {
		t.Fatalf("RetrieveDrivingSchoolsOfACompany returned error: %v", err)
	}
	if len(schools) != 1 || schools[0].ID() != "school-2" {
		t.Fatalf("expected school-2 for admin, got %d schools", len(schools))
	}

	director := actorOf(t, user.RoleDirector, "company-1")
	schools, err = svc.RetrieveDrivingSchoolsOfACompany(context.Background(), director, "company-2")
	if err != nil {
		t.Fatalf("RetrieveDrivingSchoolsOfACompany returned error: %v", err)
	}
	if len(schools) != 2 || schools[0].ID() != "school-1" || schools[1].ID() != "school-3" {
		t.Fatalf("expected director's own schools, got %d schools", len(schools))
	}
}

func TestService_RetrieveDrivingSchoolsOfACompany_NotAuthorized(t *testing.T) {
	t.Parallel()

	svc := NewService(newFakeRepo("company-1"), &stubIDs{}, &stubClock{now: time.Now()}, nil)
	actors := []*user.User{
		actorOf(t, user.RoleExecutive, "company-1"),
		actorOf(t, user.RoleStudent, ""),
		nil,
	}

	for _, actor := range actors {
		if _, err := svc.RetrieveDrivingSchoolsOfACompany(context.Background(), actor, "company-1"); !errors.Is(err, ErrNotAuthorizedToRetrieveDrivingSchoolsOfACompany) {
			t.Fatalf("expected ErrNotAuthorizedToRetrieveDrivingSchoolsOfACompany, got %v", err)
		}
	}
}
