package memory

import (
	"sync"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/company"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/drivingschool"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
)

// Storage は各リポジトリが共有するプロセス内ストアです。
// エンティティは不変なので、ポインタをそのまま保持します。
type Storage struct {
	mu        sync.RWMutex
	companies []*company.Company
	schools   []*drivingschool.DrivingSchool
	users     map[string]*user.User
}

// NewStorage は空の Storage を生成します。
func NewStorage() *Storage {
	return &Storage{users: make(map[string]*user.User)}
}

func (s *Storage) companyExists(id company.ID) bool {
	for _, c := range s.companies {
		if c.ID() == id {
			return true
		}
	}
	return false
}
