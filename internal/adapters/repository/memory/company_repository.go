package memory

import (
	"context"
	"slices"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
)

// CompanyRepository はメモリ上で会社を保持する company.Repository の実装です。
type CompanyRepository struct {
	storage *Storage
}

// NewCompanyRepository は CompanyRepository を生成します。
func NewCompanyRepository(storage *Storage) *CompanyRepository {
	return &CompanyRepository{storage: storage}
}

// Create は会社を追加します。
func (r *CompanyRepository) Create(ctx context.Context, c *company.Company) (*company.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	r.storage.companies = append(r.storage.companies, c)
	return c, nil
}

// Edit は ID が一致する会社を置き換えます。
func (r *CompanyRepository) Edit(ctx context.Context, id company.ID, c *company.Company) (*company.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	idx := slices.IndexFunc(r.storage.companies, func(existing *company.Company) bool {
		return existing.ID() == id
	})
	if idx < 0 {
		return nil, company.ErrNotFound
	}
	r.storage.companies[idx] = c
	return c, nil
}

// FindByID は ID で会社を取得します。
func (r *CompanyRepository) FindByID(ctx context.Context, id company.ID) (*company.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	for _, c := range r.storage.companies {
		if c.ID() == id {
			return c, nil
		}
	}
	return nil, company.ErrNotFound
}

// FindAll は登録順にすべての会社を返します。
func (r *CompanyRepository) FindAll(ctx context.Context) ([]*company.Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	return slices.Clone(r.storage.companies), nil
}

// Delete は会社と所属する教習所を削除します。存在しない場合は何もしません。
func (r *CompanyRepository) Delete(ctx context.Context, id company.ID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	r.storage.companies = slices.DeleteFunc(r.storage.companies, func(c *company.Company) bool {
		return c.ID() == id
	})
	r.storage.schools = slices.DeleteFunc(r.storage.schools, func(s *drivingschool.DrivingSchool) bool {
		return s.CompanyID() == id
	})
	return nil
}
