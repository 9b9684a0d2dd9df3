package service

import (
	"context"
	"strings"
	"testing"

	"bank_backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newTestHasher())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "password123", user.Password)

	id, err := svc.Login(ctx, "alice", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)
}

func TestAuthService_RegisterConflicts(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newTestHasher())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Email: "fresh@example.com", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "Username already exists", domain.MessageOf(err))

	_, err = svc.Register(ctx, RegisterInput{Username: "bob", Email: "alice@example.com", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "Email already registered", domain.MessageOf(err))
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newTestHasher())
	ctx := context.Background()

	cases := []RegisterInput{
		{Username: "", Email: "a@example.com", Password: "pw"},
		{Username: "   ", Email: "a@example.com", Password: "pw"},
		{Username: "alice", Email: "", Password: "pw"},
		{Username: "alice", Email: "a@example.com", Password: ""},
		{Username: "alice", Email: "a@example.com", Password: strings.Repeat("p", 80)},
	}
	for _, in := range cases {
		_, err := svc.Register(ctx, in)
		assert.Equal(t, domain.KindValidation, domain.KindOf(err), "input %+v", in)
	}
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newTestHasher())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "password123"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, "alice", "password124")
	_, unknownUser := svc.Login(ctx, "mallory", "password123")

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, domain.KindAuth, domain.KindOf(wrongPassword))
	assert.Equal(t, domain.KindOf(wrongPassword), domain.KindOf(unknownUser))
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
	assert.Equal(t, "Invalid username or password", domain.MessageOf(unknownUser))
}

func TestAuthService_LoginIsCaseSensitive(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newTestHasher())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "Alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "Alice", "pw")
	assert.NoError(t, err)
	_, err = svc.Login(ctx, "Alice", "PW")
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))
}

func TestAuthService_StoreFailure(t *testing.T) {
	conn := newTestDB(t)
	svc := NewAuthService(conn, newTestHasher())
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = svc.Login(context.Background(), "alice", "pw")
	assert.Equal(t, domain.KindStore, domain.KindOf(err))
	assert.Equal(t, "Internal server error", domain.MessageOf(err))

	_, err = svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "a@example.com", Password: "pw"})
	assert.Equal(t, domain.KindStore, domain.KindOf(err))
}

func TestAuthService_PaddedUsernameRoundTrips(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newTestHasher())
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: " bob ", Email: "b@x", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, " bob ", user.Username)

	id, err := svc.Login(ctx, " bob ", "pw")
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	_, err = svc.Login(ctx, "bob", "pw")
	assert.Equal(t, domain.KindAuth, domain.KindOf(err))
}

func TestAuthService_EmptyCredentialsFailAsAuth(t *testing.T) {
	svc := NewAuthService(newTestDB(t), newTestHasher())
	ctx := context.Background()
	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.NoError(t, err)

	for _, creds := range [][2]string{{"alice", ""}, {"", "pw"}, {"", ""}} {
		_, err := svc.Login(ctx, creds[0], creds[1])
		assert.Equal(t, domain.KindAuth, domain.KindOf(err), "credentials %q", creds)
		assert.Equal(t, "Invalid username or password", domain.MessageOf(err))
	}
}

func TestAuthService_RegisterLosesUniqueIndexRace(t *testing.T) {
	conn := newTestDB(t)
	svc := NewAuthService(conn, newTestHasher())

	// Another registration commits after the existence checks have passed
	require.NoError(t, conn.Callback().Create().Before("gorm:create").Register("test:concurrent_register", func(tx *gorm.DB) {
		if tx.Statement.Table != "users" {
			return
		}
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (username, email, password) VALUES (?, ?, ?)", "alice", "other@example.com", "x")
	}))

	_, err := svc.Register(context.Background(), RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw"})
	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, "Username or email already exists", domain.MessageOf(err))
}
