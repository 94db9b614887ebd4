package auth

import (
	"context"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
)

type actorContextKey struct{}

// WithActor は認証済みユーザーをコンテキストに格納します。
func WithActor(ctx context.Context, actor *user.User) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

// ActorFromContext は認証済みユーザーを取り出します。
func ActorFromContext(ctx context.Context) (*user.User, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(*user.User)
	return actor, ok && actor != nil
}
