// AngelaMos | 2026
// service_test.go

package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coverdrive/academy/internal/config"
	"github.com/coverdrive/academy/internal/core"
	"github.com/coverdrive/academy/internal/rbac"
)

type fakeTokenRepo struct{}

func (f *fakeTokenRepo) Create(context.Context, *RefreshToken) error {
	return nil
}

func (f *fakeTokenRepo) FindByHash(
	context.Context,
	string,
) (*RefreshToken, error) {
	return nil, core.ErrNotFound
}

func (f *fakeTokenRepo) FindByID(
	context.Context,
	string,
) (*RefreshToken, error) {
	return nil, core.ErrNotFound
}

func (f *fakeTokenRepo) MarkAsUsed(context.Context, string, string) error {
	return nil
}

func (f *fakeTokenRepo) RevokeByID(context.Context, string) error {
	return nil
}

func (f *fakeTokenRepo) RevokeByFamilyID(context.Context, string) error {
	return nil
}

func (f *fakeTokenRepo) RevokeAllForIdentity(context.Context, string) error {
	return nil
}

func (f *fakeTokenRepo) GetActiveSessionsForIdentity(
	context.Context,
	string,
) ([]RefreshToken, error) {
	return nil, nil
}

func (f *fakeTokenRepo) DeleteExpired(context.Context) (int64, error) {
	return 0, nil
}

type fakeIdentities struct {
	info *IdentityInfo
}

func (f *fakeIdentities) Authenticate(
	_ context.Context,
	_, _ string,
) (*IdentityInfo, error) {
	return f.info, nil
}

func (f *fakeIdentities) GetByID(
	_ context.Context,
	id string,
) (*IdentityInfo, error) {
	if f.info == nil || f.info.ID != id {
		return nil, core.ErrNotFound
	}
	return f.info, nil
}

func (f *fakeIdentities) UpdatePassword(context.Context, string, string) error {
	return nil
}

func (f *fakeIdentities) IncrementTokenVersion(
	_ context.Context,
	_ string,
) error {
	f.info.TokenVersion++
	return nil
}

func testJWTManager(t *testing.T, accessExpire time.Duration) *JWTManager {
	t.Helper()

	dir := t.TempDir()
	privatePath := filepath.Join(dir, "jwt_private.pem")
	publicPath := filepath.Join(dir, "jwt_public.pem")
	require.NoError(t, GenerateKeyPair(privatePath, publicPath))

	manager, err := NewJWTManager(config.JWTConfig{
		PrivateKeyPath:     privatePath,
		AccessTokenExpire:  accessExpire,
		RefreshTokenExpire: 24 * time.Hour,
		Issuer:             "academy-test",
		Audience:           "academy-api",
	})
	require.NoError(t, err)

	return manager
}

func testAuthService(
	t *testing.T,
	accessExpire time.Duration,
	ident *IdentityInfo,
) (*Service, *JWTManager, *fakeIdentities) {
	t.Helper()

	manager := testJWTManager(t, accessExpire)
	identities := &fakeIdentities{info: ident}

	// Redis is never reached in these paths; a client with no server
	// behind it keeps the constructor signature honest.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})

	return NewService(&fakeTokenRepo{}, manager, identities, rdb),
		manager,
		identities
}

func staffIdentity() *IdentityInfo {
	return &IdentityInfo{
		ID:           "3c1f5a34-0000-4000-8000-4242deadbeef",
		Email:        "desk@academy.test",
		Name:         "Front Desk",
		Role:         rbac.RoleStaff,
		TokenVersion: 0,
	}
}

func TestVerifyAccessTokenCarriesClaims(t *testing.T) {
	ident := staffIdentity()
	manager := testJWTManager(t, 15*time.Minute)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		IdentityID:   ident.ID,
		Role:         string(ident.Role),
		Permissions:  []string{"students.view"},
		TokenVersion: 3,
	})
	require.NoError(t, err)

	claims, err := manager.VerifyAccessToken(context.Background(), signed)
	require.NoError(t, err)

	assert.Equal(t, ident.ID, claims.IdentityID)
	assert.Equal(t, string(rbac.RoleStaff), claims.Role)
	assert.Equal(t, []string{"students.view"}, claims.Permissions)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.NotEmpty(t, claims.JTI)
	assert.WithinDuration(
		t,
		time.Now().Add(15*time.Minute),
		claims.ExpiresAt,
		time.Minute,
	)
}

func TestVerifyAccessTokenRejectsStaleVersion(t *testing.T) {
	ident := staffIdentity()
	svc, manager, identities := testAuthService(t, 15*time.Minute, ident)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		IdentityID:   ident.ID,
		Role:         string(ident.Role),
		TokenVersion: ident.TokenVersion,
	})
	require.NoError(t, err)

	// A role or permission change bumps the version; tokens minted
	// before the bump must stop working.
	require.NoError(
		t,
		identities.IncrementTokenVersion(context.Background(), ident.ID),
	)

	_, err = svc.VerifyAccessToken(context.Background(), signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenRevoked)
}

func TestVerifyAccessTokenRejectsExpired(t *testing.T) {
	ident := staffIdentity()
	svc, manager, _ := testAuthService(t, -time.Minute, ident)

	signed, err := manager.CreateAccessToken(AccessTokenClaims{
		IdentityID:   ident.ID,
		Role:         string(ident.Role),
		TokenVersion: ident.TokenVersion,
	})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(context.Background(), signed)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenExpired)
}

func TestVerifyAccessTokenRejectsGarbage(t *testing.T) {
	ident := staffIdentity()
	svc, _, _ := testAuthService(t, 15*time.Minute, ident)

	_, err := svc.VerifyAccessToken(
		context.Background(),
		"not-a-token-at-all",
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrTokenInvalid)
}
