package config

import (
	"time"
)

type DB struct {
	Driver          string        `envconfig:"DRIVER" default:"sqlite"`
	Url             string        `envconfig:"URL" default:"finhealth.db"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"168h"`
}

type Auth struct {
	Jwt *Jwt `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL" default:"redis://localhost:6379/0"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

// Cache selects where dashboard and trend reads are cached.
type Cache struct {
	Driver string        `envconfig:"DRIVER" default:"memory"`
	TTL    time.Duration `envconfig:"TTL" default:"5m"`
	Prefix string        `envconfig:"PREFIX" default:"finhealth:"`
}

// Broker configures the RabbitMQ event bus. An empty URL keeps events in process.
type Broker struct {
	URL      string `envconfig:"URL"`
	Exchange string `envconfig:"EXCHANGE" default:"finhealth.events"`
	Queue    string `envconfig:"QUEUE" default:"finhealth"`
}

type Insights struct {
	Inline        bool          `envconfig:"INLINE" default:"true"`
	LookbackDays  int           `envconfig:"LOOKBACK_DAYS" default:"90"`
	HorizonDays   int           `envconfig:"HORIZON_DAYS" default:"30"`
	SweepInterval time.Duration `envconfig:"SWEEP_INTERVAL" default:"1h"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[finhealth]"`
}

type Server struct {
	Scheme   string `envconfig:"SCHEME" default:"http"`
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     int    `envconfig:"PORT" default:"3000"`
	BasePath string `envconfig:"BASE_PATH" default:""`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	Redis     *Redis     `envconfig:"REDIS"`
	Cache     *Cache     `envconfig:"CACHE"`
	Broker    *Broker    `envconfig:"BROKER"`
	Insights  *Insights  `envconfig:"INSIGHTS"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}

// IsProduction reports whether internal error details must be hidden.
func (a *App) IsProduction() bool {
	return a.Env == "production"
}

// IsTest reports whether the app runs under the test harness.
func (a *App) IsTest() bool {
	return a.Env == "test"
}
