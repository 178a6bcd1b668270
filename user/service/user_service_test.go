package service

import (
	"testing"
	"time"

	"therapeutic-assistant/backend/pkg/jwt"
	"therapeutic-assistant/backend/user/models"
	"therapeutic-assistant/backend/user/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	jwtService := jwt.NewService("test-secret", time.Hour)
	return NewUserService(repository.NewGormUserRepository(db), nil, jwtService), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestService(t)

	user, token, err := svc.Register(&models.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "secret123", user.Password)

	logged, token, err := svc.Login(&models.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, token)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register(&models.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Register(&models.RegisterRequest{Username: "alice", Password: "other456"})
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Register(&models.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	_, _, err = svc.Login(&models.LoginRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, _, err := svc.Login(&models.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetUserByIDUnknown(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.GetUserByID(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestEnsureAssistantUser(t *testing.T) {
	svc, _ := newTestService(t)

	require.NoError(t, svc.EnsureAssistantUser(1, "assistant"))

	user, err := svc.GetUserByID(1)
	require.NoError(t, err)
	assert.Equal(t, "assistant", user.Username)

	// Seeding again must not fail or duplicate
	require.NoError(t, svc.EnsureAssistantUser(1, "assistant"))
}

func TestUpdateUser(t *testing.T) {
	svc, _ := newTestService(t)

	user, _, err := svc.Register(&models.RegisterRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	updated, err := svc.UpdateUser(user.ID, "alice2", "")
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)

	// New password takes effect, old one stops working
	_, err = svc.UpdateUser(user.ID, "", "newpass789")
	require.NoError(t, err)

	_, _, err = svc.Login(&models.LoginRequest{Username: "alice2", Password: "newpass789"})
	require.NoError(t, err)
	_, _, err = svc.Login(&models.LoginRequest{Username: "alice2", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
