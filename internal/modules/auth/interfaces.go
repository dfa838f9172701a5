package auth

import (
	"context"

	"courtside/internal/domain"
	"courtside/internal/pkg/qrtoken"
)

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetQRToken(ctx context.Context, id int64, token string) error
}

type TokenGenerator interface {
	GenerateToken(userID int64, email, role string) (string, error)
}

type QRIssuer interface {
	IssueUser(p qrtoken.UserPayload) (string, error)
}
