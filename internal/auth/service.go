// AngelaMos | 2026
// service.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/middleware"
	"github.com/coverdrive/academy/internal/rbac"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenReuse         = errors.New("token reuse detected")
)

// IdentityInfo is the slice of an identity the auth flow needs. The hash
// stays inside the server process; it is never serialized.
type IdentityInfo struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         rbac.Role
	Permissions  []rbac.Permission
	TokenVersion int
}

type IdentityProvider interface {
	// Authenticate applies the lockout policy and verifies the credential.
	Authenticate(
		ctx context.Context,
		email, password string,
	) (*IdentityInfo, error)
	GetByID(ctx context.Context, id string) (*IdentityInfo, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	IncrementTokenVersion(ctx context.Context, id string) error
}

type Service struct {
	repo       Repository
	jwt        *JWTManager
	identities IdentityProvider
	redis      *redis.Client
}

func NewService(
	repo Repository,
	jwt *JWTManager,
	identities IdentityProvider,
	redisClient *redis.Client,
) *Service {
	return &Service{
		repo:       repo,
		jwt:        jwt,
		identities: identities,
		redis:      redisClient,
	}
}

func (s *Service) Login(
	ctx context.Context,
	req LoginRequest,
	userAgent, ipAddress string,
) (*AuthResponse, error) {
	ident, err := s.identities.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	return s.createAuthResponse(ctx, ident, userAgent, ipAddress, "", nil)
}

func (s *Service) Refresh(
	ctx context.Context,
	refreshToken, userAgent, ipAddress string,
) (*AuthResponse, error) {
	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenInvalid)
		}
		return nil, fmt.Errorf("find token: %w", err)
	}

	if storedToken.IsUsed {
		//nolint:errcheck // security revocation continues regardless
		_ = s.repo.RevokeByFamilyID(ctx, storedToken.FamilyID)
		return nil, ErrTokenReuse
	}

	if !storedToken.IsValid() {
		if storedToken.IsRevoked() {
			return nil, fmt.Errorf("refresh: %w", core.ErrTokenRevoked)
		}
		return nil, fmt.Errorf("refresh: %w", core.ErrTokenExpired)
	}

	ident, err := s.identities.GetByID(ctx, storedToken.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("get identity: %w", err)
	}

	return s.createAuthResponse(
		ctx,
		ident,
		userAgent,
		ipAddress,
		storedToken.FamilyID,
		&storedToken.ID,
	)
}

func (s *Service) Logout(
	ctx context.Context,
	refreshToken, identityID string,
) error {
	tokenHash := core.HashToken(refreshToken)

	storedToken, err := s.repo.FindByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("find token: %w", err)
	}

	if storedToken.IdentityID != identityID {
		return fmt.Errorf("logout: %w", core.ErrForbidden)
	}

	if err := s.repo.RevokeByID(ctx, storedToken.ID); err != nil &&
		!errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("revoke token: %w", err)
	}

	return nil
}

func (s *Service) LogoutAll(ctx context.Context, identityID string) error {
	if err := s.repo.RevokeAllForIdentity(ctx, identityID); err != nil {
		return fmt.Errorf("revoke all tokens: %w", err)
	}

	if err := s.identities.IncrementTokenVersion(ctx, identityID); err != nil {
		return fmt.Errorf("increment token version: %w", err)
	}

	return nil
}

// VerifyAccessToken is the full verification path: signature and claim
// checks, then the Redis blacklist, then the identity's current token
// version. Tokens issued before a version bump are rejected.
func (s *Service) VerifyAccessToken(
	ctx context.Context,
	tokenString string,
) (*middleware.AccessTokenClaims, error) {
	claims, err := s.jwt.VerifyAccessToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	if err := s.ValidateTokenVersion(
		ctx,
		claims.IdentityID,
		claims.TokenVersion,
	); err != nil {
		return nil, err
	}

	blacklisted, err := s.IsAccessTokenBlacklisted(ctx, claims.JTI)
	if err != nil {
		return nil, fmt.Errorf("verify token: %w", err)
	}
	if blacklisted {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenRevoked)
	}

	return claims, nil
}

func (s *Service) RevokeAccessToken(
	ctx context.Context,
	jti string,
	expiresAt time.Time,
) error {
	key := "blacklist:" + jti
	ttl := time.Until(expiresAt)

	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("blacklist token: %w", err)
	}

	return nil
}

func (s *Service) IsAccessTokenBlacklisted(
	ctx context.Context,
	jti string,
) (bool, error) {
	key := "blacklist:" + jti

	exists, err := s.redis.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("check blacklist: %w", err)
	}

	return exists > 0, nil
}

func (s *Service) GetActiveSessions(
	ctx context.Context,
	identityID string,
) ([]SessionInfo, error) {
	tokens, err := s.repo.GetActiveSessionsForIdentity(ctx, identityID)
	if err != nil {
		return nil, fmt.Errorf("get sessions: %w", err)
	}

	sessions := make([]SessionInfo, 0, len(tokens))
	for _, t := range tokens {
		sessions = append(sessions, SessionInfo{
			ID:        t.ID,
			UserAgent: t.UserAgent,
			IPAddress: t.IPAddress,
			CreatedAt: t.CreatedAt,
			ExpiresAt: t.ExpiresAt,
		})
	}

	return sessions, nil
}

func (s *Service) RevokeSession(
	ctx context.Context,
	identityID, sessionID string,
) error {
	token, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("find session: %w", err)
	}

	if token.IdentityID != identityID {
		return fmt.Errorf("revoke session: %w", core.ErrForbidden)
	}

	if err := s.repo.RevokeByID(ctx, sessionID); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	return nil
}

func (s *Service) ChangePassword(
	ctx context.Context,
	identityID, currentPassword, newPassword string,
) error {
	ident, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return fmt.Errorf("get identity: %w", err)
	}

	valid, _, err := core.VerifyPasswordWithRehash(
		currentPassword,
		ident.PasswordHash,
	)
	if err != nil {
		return fmt.Errorf("verify password: %w", err)
	}

	if !valid {
		return ErrInvalidCredentials
	}

	newHash, err := core.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.identities.UpdatePassword(ctx, identityID, newHash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if err := s.LogoutAll(ctx, identityID); err != nil {
		return fmt.Errorf("logout all: %w", err)
	}

	return nil
}

func (s *Service) ValidateTokenVersion(
	ctx context.Context,
	identityID string,
	tokenVersion int,
) error {
	ident, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return fmt.Errorf("get identity: %w", err)
	}

	if tokenVersion < ident.TokenVersion {
		return fmt.Errorf("validate token version: %w", core.ErrTokenRevoked)
	}

	return nil
}

func (s *Service) GetCurrentIdentity(
	ctx context.Context,
	identityID string,
) (*IdentityResponse, error) {
	ident, err := s.identities.GetByID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	resp := toIdentityResponse(ident)
	return &resp, nil
}

func (s *Service) createAuthResponse(
	ctx context.Context,
	ident *IdentityInfo,
	userAgent, ipAddress, familyID string,
	oldTokenID *string,
) (*AuthResponse, error) {
	accessToken, err := s.jwt.CreateAccessToken(AccessTokenClaims{
		IdentityID:   ident.ID,
		Role:         string(ident.Role),
		Permissions:  permissionStrings(ident.Permissions),
		TokenVersion: ident.TokenVersion,
	})
	if err != nil {
		return nil, fmt.Errorf("create access token: %w", err)
	}

	refreshData, err := s.jwt.CreateRefreshToken(ident.ID, familyID)
	if err != nil {
		return nil, fmt.Errorf("create refresh token: %w", err)
	}

	newTokenID := uuid.New().String()

	refreshTokenEntity := &RefreshToken{
		ID:         newTokenID,
		IdentityID: ident.ID,
		TokenHash:  refreshData.Hash,
		FamilyID:   refreshData.FamilyID,
		ExpiresAt:  refreshData.ExpiresAt,
		UserAgent:  userAgent,
		IPAddress:  ipAddress,
	}

	if err := s.repo.Create(ctx, refreshTokenEntity); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	if oldTokenID != nil {
		//nolint:errcheck // best-effort token chain tracking
		_ = s.repo.MarkAsUsed(ctx, *oldTokenID, newTokenID)
	}

	accessTTL := s.jwt.config.AccessTokenExpire

	return &AuthResponse{
		Identity: toIdentityResponse(ident),
		Tokens: TokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshData.Token,
			TokenType:    "Bearer",
			ExpiresIn:    int(accessTTL / time.Second),
			ExpiresAt:    time.Now().Add(accessTTL),
		},
	}, nil
}

func toIdentityResponse(ident *IdentityInfo) IdentityResponse {
	return IdentityResponse{
		ID:          ident.ID,
		Email:       ident.Email,
		Name:        ident.Name,
		Role:        string(ident.Role),
		Permissions: permissionStrings(ident.Permissions),
	}
}

func permissionStrings(perms []rbac.Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}
