package auth

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cklam2/canteen/internal/models"
	"github.com/cklam2/canteen/internal/repo"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	return &Service{
		Repo:      &repo.GormRepo{DB: db},
		JWTSecret: []byte("test-jwt-secret"),
	}
}

func TestCreateToken_RoundTrip(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, err := CreateToken(secret, "s1234567", "Ada Wong", RoleStudent, 15*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)

	assert.Equal(t, "s1234567", claims.Subject)
	assert.Equal(t, "Ada Wong", claims.Name)
	assert.Equal(t, RoleStudent, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := CreateToken([]byte("secret-a"), "s1", "A", RoleStudent, time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("secret-b"))
	require.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("test-jwt-secret")
	token, err := CreateToken(secret, "s1", "A", RoleStudent, -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	require.Error(t, err)
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		studentID string
		userName  string
		password  string
	}{
		{name: "empty student id", studentID: "", userName: "Ada", password: "secret1"},
		{name: "empty name", studentID: "s1", userName: "", password: "secret1"},
		{name: "short password", studentID: "s1", userName: "Ada", password: "abc"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := svc.Register(ctx, tt.studentID, tt.userName, tt.password)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "s1234567", "Ada Wong", "secret1"))

	// Duplicate registration is rejected.
	err := svc.Register(ctx, "s1234567", "Ada Wong", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)

	token, err := svc.Login(ctx, "s1234567", "secret1")
	require.NoError(t, err)

	claims, err := ParseToken(token, svc.JWTSecret)
	require.NoError(t, err)
	assert.Equal(t, "s1234567", claims.Subject)
	assert.Equal(t, RoleStudent, claims.Role)

	_, err = svc.Login(ctx, "s1234567", "wrong-password")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = svc.Login(ctx, "unknown", "secret1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
