package redis_test

import (
	"context"
	"fmt"
	"taskKeeper/internal/storage"
	"taskKeeper/internal/storage/redis"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisTestSuite для интеграционных тестов с Redis
type RedisTestSuite struct {
	suite.Suite
	container testcontainers.Container
	addr      string
	ctx       context.Context
}

func (s *RedisTestSuite) SetupSuite() {
	s.ctx = context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(s.T(), err)
	s.container = container

	host, err := container.Host(s.ctx)
	require.NoError(s.T(), err)

	port, err := container.MappedPort(s.ctx, "6379")
	require.NoError(s.T(), err)

	s.addr = fmt.Sprintf("%s:%s", host, port.Port())
}

func (s *RedisTestSuite) TearDownSuite() {
	if s.container != nil {
		s.container.Terminate(s.ctx)
	}
}

func (s *RedisTestSuite) newStorage(prefix string) *redis.Storage {
	st, err := redis.New(s.ctx, redis.Options{Addr: s.addr, Prefix: prefix})
	require.NoError(s.T(), err)
	s.T().Cleanup(func() { st.Close() })
	return st
}

func (s *RedisTestSuite) TestGetSet() {
	st := s.newStorage("get-set:")

	_, err := st.Get(s.ctx, storage.KeyTasks)
	assert.ErrorIs(s.T(), err, storage.ErrNotFound)

	require.NoError(s.T(), st.Set(s.ctx, storage.KeyTasks, "[]"))
	value, err := st.Get(s.ctx, storage.KeyTasks)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "[]", value)
}

func (s *RedisTestSuite) TestPrefixIsolation() {
	first := s.newStorage("first:")
	second := s.newStorage("second:")

	require.NoError(s.T(), first.Set(s.ctx, storage.KeyDarkMode, "true"))

	_, err := second.Get(s.ctx, storage.KeyDarkMode)
	assert.ErrorIs(s.T(), err, storage.ErrNotFound)
}

func (s *RedisTestSuite) TestHealthCheck() {
	st := s.newStorage("health:")
	assert.NoError(s.T(), st.HealthCheck(s.ctx))
}

func TestRedisSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("интеграционные тесты пропускаются в режиме -short")
	}
	suite.Run(t, new(RedisTestSuite))
}

// TestNew_EmptyAddr не требует контейнера
func TestNew_EmptyAddr(t *testing.T) {
	_, err := redis.New(context.Background(), redis.Options{})
	assert.Error(t, err)
}
