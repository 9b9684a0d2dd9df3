package service

import (
	"testing"
	"time"

	"bank_backend/internal/db"
	"bank_backend/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_fk=1"
	cfg := db.Config()
	cfg.Logger = logger.Default.LogMode(logger.Silent)
	conn, err := gorm.Open(sqlite.Open(dsn), cfg)
	require.NoError(t, err, "open sqlite")

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	// One connection serialises writers, as sqlite shared cache rejects concurrent ones
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(conn))
	return conn
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	srv, err := miniredis.Run()
	if err != nil {
		t.Skipf("skip: miniredis unavailable: %v", err)
	}
	t.Cleanup(srv.Close)
	rdb := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return srv, rdb
}

func newTestHasher() *utils.Hasher {
	return utils.NewHasher(bcrypt.MinCost)
}

func newTestAccountService(conn *gorm.DB, rdb *redis.Client) *AccountService {
	return NewAccountService(conn, newTestHasher(), utils.NewAccountNumberAllocator(50), rdb, time.Minute)
}
