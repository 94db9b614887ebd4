package drivingschool

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/contact"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// IDGenerator は ID とフィンガープリントを払い出します。
type IDGenerator interface {
	Generate() string
	GenerateFingerprint() string
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Service は教習所に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	ids   IDGenerator
	clock Clock
	tx    TransactionManager
}

// UseCase は教習所ユースケースの公開インターフェースです。
type UseCase interface {
	CreateADrivingSchool(ctx context.Context, actor *user.User, in CreateDrivingSchoolInput) (*DrivingSchool, error)
	RetrieveADrivingSchool(ctx context.Context, actor *user.User, id ID) (View, error)
	RetrieveDrivingSchoolsOfACompany(ctx context.Context, actor *user.User, companyID company.ID) ([]*DrivingSchool, error)
}

// NewService は Service を生成します。ids は必須です。
func NewService(repo Repository, ids IDGenerator, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, ids: ids, clock: clock, tx: tx}
}

// CreateDrivingSchoolInput は教習所作成時の入力です。
// CompanyID は管理者の場合のみ参照され、ディレクターの場合は所属会社で上書きされます。
type CreateDrivingSchoolInput struct {
	CompanyID    company.ID
	Name         string
	Address      contact.Address
	Phone        string
	Email        string
	OpeningHours OpeningHours
}

// CreateADrivingSchool は教習所を作成します。管理者またはディレクターのみ実行できます。
func (s *Service) CreateADrivingSchool(ctx context.Context, actor *user.User, in CreateDrivingSchoolInput) (*DrivingSchool, error) {
	if !user.IsAdminOrDirector(actor) {
		return nil, ErrNotAuthorizedToCreateADrivingSchool
	}

	companyID := in.CompanyID
	if !user.IsAdmin(actor) {
		companyID = company.ID(actor.RelatedCompany())
	}

	now := s.clock.Now()
	school, err := FromData(Data{
		ID:           ID(s.ids.Generate()),
		Fingerprint:  Fingerprint(s.ids.GenerateFingerprint()),
		CompanyID:    companyID,
		Name:         in.Name,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		OpeningHours: in.OpeningHours,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	var created *DrivingSchool
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, school)
		if err != nil {
			return repositoryError("create", err)
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// RetrieveADrivingSchool は教習所を取得し、実行者のロールに応じた View を返します。
// 認証済みの実行者であればロールや所属会社は問いません。
func (s *Service) RetrieveADrivingSchool(ctx context.Context, actor *user.User, id ID) (View, error) {
	if actor == nil {
		return nil, ErrNotAuthorizedToRetrieveADrivingSchool
	}
	if strings.TrimSpace(string(id)) == "" {
		return nil, fmt.Errorf("id: %w", ErrInvalidID)
	}

	var found *DrivingSchool
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return repositoryError("find", err)
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return Project(actor.Role(), found), nil
}

// RetrieveDrivingSchoolsOfACompany は会社に属する教習所を取得します。
// ディレクターは引数に関わらず自身の所属会社の教習所のみ取得します。
func (s *Service) RetrieveDrivingSchoolsOfACompany(ctx context.Context, actor *user.User, companyID company.ID) ([]*DrivingSchool, error) {
	if !user.IsAdminOrDirector(actor) {
		return nil, ErrNotAuthorizedToRetrieveDrivingSchoolsOfACompany
	}
	if !user.IsAdmin(actor) {
		companyID = company.ID(actor.RelatedCompany())
	}

	var schools []*DrivingSchool
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByCompany(txCtx, companyID)
		if err != nil {
			return repositoryError("list", err)
		}
		schools = result
		return nil
	}); err != nil {
		return nil, err
	}

	return schools, nil
}

// repositoryError はドメインエラーをそのまま返し、それ以外を操作名付きでラップします。
func repositoryError(op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrCompanyNotFound) {
		return err
	}
	return fmt.Errorf("driving school: %s: %w", op, err)
}
