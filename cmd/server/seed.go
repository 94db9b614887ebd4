package main

import (
	"context"
	"fmt"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/platform/config"
)

type userCreator interface {
	Create(ctx context.Context, u *user.User) (*user.User, error)
}

// seedUsers は設定に書かれたアカウントを登録します。既存の ID は上書きされます。
func seedUsers(ctx context.Context, repo userCreator, seeds []config.SeedUser) error {
	for _, s := range seeds {
		role, err := user.ParseRole(s.Role)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", s.ID, err)
		}
		u, err := user.New(s.ID, s.Name, s.Email, role, s.RelatedCompany)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", s.ID, err)
		}
		if _, err := repo.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", s.ID, err)
		}
	}
	return nil
}
