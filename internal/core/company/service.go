package company

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

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

// Service は会社に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	ids   IDGenerator
	clock Clock
	tx    TransactionManager
}

// UseCase は会社ユースケースの公開インターフェースです。
type UseCase interface {
	CreateACompany(ctx context.Context, actor *user.User, in CreateCompanyInput) (*Company, error)
	EditACompany(ctx context.Context, actor *user.User, in EditCompanyInput) (*Company, error)
	DeleteACompany(ctx context.Context, actor *user.User, in DeleteCompanyInput) (Deleted, error)
	RetrieveACompany(ctx context.Context, actor *user.User, in RetrieveCompanyInput) (*Company, error)
	RetrieveCompanies(ctx context.Context, actor *user.User) ([]*Company, error)
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

// CreateCompanyInput は会社作成時の入力です。
type CreateCompanyInput struct {
	Name        string
	Address     contact.Address
	LegalStatus string
	Contact     Contact
}

// EditCompanyInput は会社編集時の入力です。nil のフィールドは既存の値を維持します。
type EditCompanyInput struct {
	ID          ID
	Name        *string
	Address     *contact.Address
	LegalStatus *string
	Contact     *Contact
}

// DeleteCompanyInput は会社削除時の入力です。
type DeleteCompanyInput struct {
	ID ID
}

// RetrieveCompanyInput は会社取得時の入力です。
type RetrieveCompanyInput struct {
	ID ID
}

// Deleted は削除が完了したことを表します。
type Deleted struct {
	ID ID
}

// CreateACompany は新しい会社を作成します。管理者のみ実行できます。
func (s *Service) CreateACompany(ctx context.Context, actor *user.User, in CreateCompanyInput) (*Company, error) {
	if !user.IsAdmin(actor) {
		return nil, ErrNotAuthorizedToCreateACompany
	}

	now := s.clock.Now()
	company, err := FromData(Data{
		ID:          ID(s.ids.Generate()),
		Fingerprint: Fingerprint(s.ids.GenerateFingerprint()),
		Name:        in.Name,
		Address:     in.Address,
		LegalStatus: in.LegalStatus,
		Contact:     in.Contact,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	var created *Company
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		result, err := s.repo.Create(txCtx, company)
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

// EditACompany は既存の会社に変更を適用した新しい会社で置き換えます。管理者のみ実行できます。
func (s *Service) EditACompany(ctx context.Context, actor *user.User, in EditCompanyInput) (*Company, error) {
	if !user.IsAdmin(actor) {
		return nil, ErrNotAuthorizedToEditACompany
	}
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	var edited *Company
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return repositoryError("find", err)
		}

		data := existing.Data()
		if in.Name != nil {
			data.Name = *in.Name
		}
		if in.Address != nil {
			data.Address = *in.Address
		}
		if in.LegalStatus != nil {
			data.LegalStatus = *in.LegalStatus
		}
		if in.Contact != nil {
			data.Contact = *in.Contact
		}
		data.UpdatedAt = s.clock.Now()

		candidate, err := FromData(data)
		if err != nil {
			return err
		}

		result, err := s.repo.Edit(txCtx, in.ID, candidate)
		if err != nil {
			return repositoryError("edit", err)
		}
		edited = result
		return nil
	}); err != nil {
		return nil, err
	}

	return edited, nil
}

// DeleteACompany は会社を削除します。存在確認は行いません。管理者のみ実行できます。
func (s *Service) DeleteACompany(ctx context.Context, actor *user.User, in DeleteCompanyInput) (Deleted, error) {
	if !user.IsAdmin(actor) {
		return Deleted{}, ErrNotAuthorizedToDeleteACompany
	}
	if err := validateID(in.ID); err != nil {
		return Deleted{}, err
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, in.ID); err != nil {
			return repositoryError("delete", err)
		}
		return nil
	}); err != nil {
		return Deleted{}, err
	}

	return Deleted{ID: in.ID}, nil
}

// RetrieveACompany は ID で会社を取得します。管理者のみ実行できます。
func (s *Service) RetrieveACompany(ctx context.Context, actor *user.User, in RetrieveCompanyInput) (*Company, error) {
	if !user.IsAdmin(actor) {
		return nil, ErrNotAuthorizedToRetrieveACompany
	}
	if err := validateID(in.ID); err != nil {
		return nil, err
	}

	var found *Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return repositoryError("find", err)
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	return found, nil
}

// RetrieveCompanies はすべての会社を作成日時の降順で取得します。管理者のみ実行できます。
func (s *Service) RetrieveCompanies(ctx context.Context, actor *user.User) ([]*Company, error) {
	if !user.IsAdmin(actor) {
		return nil, ErrNotAuthorizedToRetrieveCompanies
	}

	var companies []*Company
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindAll(txCtx)
		if err != nil {
			return repositoryError("list", err)
		}
		companies = slices.Clone(result)
		return nil
	}); err != nil {
		return nil, err
	}

	slices.SortStableFunc(companies, func(a, b *Company) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})

	return companies, nil
}

func validateID(id ID) error {
	if strings.TrimSpace(string(id)) == "" {
		return fmt.Errorf("id: %w", ErrInvalidID)
	}
	return nil
}

// repositoryError はドメインエラーをそのまま返し、それ以外を操作名付きでラップします。
func repositoryError(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return err
	}
	return fmt.Errorf("company: %s: %w", op, err)
}
