package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/adapters/grpc/interceptor"
	"github.com/ogurasousui/drivingschool-grpc-clean-arch/internal/core/user"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

const (
	authorizationHeader = "authorization"
	bearerPrefix        = "bearer "
	healthServicePrefix = "/grpc.health.v1.Health/"
)

// UserFinder は subject からユーザーを解決します。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// UnaryServerInterceptor は Bearer トークンを検証し、実行者をコンテキストに格納します。
// ヘルスチェックは認証を要求しません。
func UnaryServerInterceptor(tokens *TokenManager, users UserFinder) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, healthServicePrefix) {
			return handler(ctx, req)
		}

		actor, err := authenticate(ctx, tokens, users)
		if err != nil {
			return nil, err
		}

		interceptor.AddLogAttrs(ctx, slog.String("actor_id", actor.ID()), slog.String("actor_role", string(actor.Role())))
		return handler(WithActor(ctx, actor), req)
	}
}

func authenticate(ctx context.Context, tokens *TokenManager, users UserFinder) (*user.User, error) {
	raw, err := bearerToken(ctx)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	subject, err := tokens.Verify(raw)
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, err.Error())
	}

	actor, err := users.FindByID(ctx, subject)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, status.Error(codes.Unauthenticated, "auth: unknown account")
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return actor, nil
}

func bearerToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", ErrMissingToken
	}

	values := md.Get(authorizationHeader)
	if len(values) == 0 {
		return "", ErrMissingToken
	}

	value := strings.TrimSpace(values[0])
	if len(value) <= len(bearerPrefix) || !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(value[len(bearerPrefix):]), nil
}
