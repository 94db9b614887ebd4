package memory

import (
	"context"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
)

// DrivingSchoolRepository はメモリ上で教習所を保持する drivingschool.Repository の実装です。
type DrivingSchoolRepository struct {
	storage *Storage
}

// NewDrivingSchoolRepository は DrivingSchoolRepository を生成します。
func NewDrivingSchoolRepository(storage *Storage) *DrivingSchoolRepository {
	return &DrivingSchoolRepository{storage: storage}
}

// Create は教習所を追加します。会社が存在しない場合は ErrCompanyNotFound を返します。
func (r *DrivingSchoolRepository) Create(ctx context.Context, school *drivingschool.DrivingSchool) (*drivingschool.DrivingSchool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.Lock()
	defer r.storage.mu.Unlock()

	if !r.storage.companyExists(school.CompanyID()) {
		return nil, drivingschool.ErrCompanyNotFound
	}
	r.storage.schools = append(r.storage.schools, school)
	return school, nil
}

// FindByID は ID で教習所を取得します。
func (r *DrivingSchoolRepository) FindByID(ctx context.Context, id drivingschool.ID) (*drivingschool.DrivingSchool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	for _, school := range r.storage.schools {
		if school.ID() == id {
			return school, nil
		}
	}
	return nil, drivingschool.ErrNotFound
}

// FindByCompany は会社に属する教習所を登録順に返します。
func (r *DrivingSchoolRepository) FindByCompany(ctx context.Context, companyID company.ID) ([]*drivingschool.DrivingSchool, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	schools := make([]*drivingschool.DrivingSchool, 0)
	for _, school := range r.storage.schools {
		if school.CompanyID() == companyID {
			schools = append(schools, school)
		}
	}
	return schools, nil
}
