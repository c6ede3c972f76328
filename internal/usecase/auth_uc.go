package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/woodveneer/storefront/internal/domain"
)

const tokenIssuer = "woodveneer"

type Claims struct {
	AdminID  string      `json:"adminId"`
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

// Session is what a successful login hands back to the client.
type Session struct {
	User      *domain.Admin `json:"user"`
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
}

type AuthUC struct {
	Admins domain.AdminRepo
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (uc *AuthUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

// Login checks the credentials of an active admin. Unknown users, inactive
// users and wrong passwords all fail with ErrInvalidCredentials.
func (uc *AuthUC) Login(ctx context.Context, username, password string) (*Session, error) {
	a, err := uc.Admins.FindActiveByUsername(ctx, username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := uc.now()
	if err := uc.Admins.TouchLogin(ctx, a.ID, now); err != nil {
		return nil, fmt.Errorf("touch login: %w", err)
	}
	a.LastLoginAt = &now

	token, exp, err := uc.Issue(a)
	if err != nil {
		return nil, err
	}
	return &Session{User: a, Token: token, ExpiresAt: exp}, nil
}

func (uc *AuthUC) Issue(a *domain.Admin) (string, time.Time, error) {
	now := uc.now()
	exp := now.Add(uc.TTL)
	claims := &Claims{
		AdminID:  a.ID.String(),
		Username: a.Username,
		Role:     a.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   a.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// Verify resolves a bearer token to its admin. Bad signatures, expired tokens
// and deactivated or missing admins yield ErrUnauthorized.
func (uc *AuthUC) Verify(ctx context.Context, token string) (*domain.Admin, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return uc.Secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(uc.now),
	)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	id, err := uuid.Parse(claims.AdminID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	a, err := uc.Admins.FindActiveByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
