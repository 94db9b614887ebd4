package drivingschool

import (
	"context"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
)

// Creator は教習所を作成します。参照先の会社が存在しない場合は ErrCompanyNotFound を返します。
type Creator interface {
	Create(ctx context.Context, school *DrivingSchool) (*DrivingSchool, error)
}

// Retriever は ID で教習所を取得します。存在しない場合は ErrNotFound を返します。
type Retriever interface {
	FindByID(ctx context.Context, id ID) (*DrivingSchool, error)
}

// CompanyLister は会社に属する教習所を取得します。
type CompanyLister interface {
	FindByCompany(ctx context.Context, companyID company.ID) ([]*DrivingSchool, error)
}

// Repository は教習所エンティティの永続化を行うインターフェースです。
type Repository interface {
	Creator
	Retriever
	CompanyLister
}
