package initializer

import (
	"bytes"
	"context"
	"testing"
	"time"

	infracache "github.com/amirasaad/finhealth/infra/cache"
	infraeventbus "github.com/amirasaad/finhealth/infra/eventbus"
	"github.com/amirasaad/finhealth/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.App {
	return &config.App{
		Env: "test",
		Log: &config.Log{Level: 0, Format: "text", TimeFormat: "15:04:05"},
		DB: &config.DB{
			Driver:          "sqlite",
			Url:             t.TempDir() + "/init.db",
			MaxOpenConns:    2,
			MaxIdleConns:    2,
			ConnMaxLifetime: time.Minute,
			AutoMigrate:     true,
		},
		Cache:    &config.Cache{Driver: "memory", TTL: time.Minute},
		Redis:    &config.Redis{},
		Broker:   &config.Broker{},
		Insights: &config.Insights{Inline: true, LookbackDays: 90, HorizonDays: 30},
	}
}

func TestInitializeDependencies_Defaults(t *testing.T) {
	deps, err := InitializeDependencies(testConfig(t), RoleAPI)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	assert.IsType(t, &infracache.MemoryCache{}, deps.Cache)
	assert.IsType(t, &infraeventbus.MemoryEventBus{}, deps.EventBus)
	require.NotNil(t, deps.Uow)
	assert.True(t, deps.DB.Migrator().HasTable("transactions"))
}

func TestInitializeDependencies_WorkerNeedsBroker(t *testing.T) {
	_, err := InitializeDependencies(testConfig(t), RoleWorker)
	assert.ErrorContains(t, err, "BROKER_URL")
}

func TestInitCache_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Driver = "memcached"
	_, err := initCache(cfg, newLogger(&bytes.Buffer{}, cfg.Log))
	assert.Error(t, err)
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Log{Format: "json", TimeFormat: time.RFC3339})
	logger.InfoContext(context.Background(), "dashboard cached", "userID", "abc")
	assert.Contains(t, buf.String(), `"msg":"dashboard cached"`)
	assert.Contains(t, buf.String(), `"userID":"abc"`)
}
