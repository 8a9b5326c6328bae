package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `env:"ENV" envDefault:"development" validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Postgres Postgres `validate:"required"`

	Kafka Kafka `validate:"required"`

	Redis Redis `validate:"required"`

	Cache Cache

	Airalo Airalo `validate:"required"`

	Robokassa Robokassa
	Stripe    Stripe

	SMTP SMTP

	Sweeper Sweeper `validate:"required"`
}

type Http struct {
	Host string `env:"HOST" envDefault:"localhost" validate:"required,hostname|ip"`
	Port string `env:"PORT" envDefault:"8080" validate:"required,numeric"`
	// PublicURL внешний адрес сервиса, нужен для success/fail ссылок платёжных систем
	PublicURL string `env:"PUBLIC_URL" envDefault:"http://localhost:3000" validate:"required,url"`
}

type CORS struct {
	AllowedOrigins []string `env:"ALLOWED_CORS_ORIGINS" envDefault:"http://localhost:3000" envSeparator:"," validate:"required,min=1,dive,url"`
}

type Postgres struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost" validate:"required,hostname|ip"`
	Port     int    `env:"POSTGRES_PORT" envDefault:"5432" validate:"required,gt=0,lte=65535"`
	DBName   string `env:"POSTGRES_DB" envDefault:"esim" validate:"required"`
	User     string `env:"POSTGRES_USER" validate:"required"`
	Password string `env:"POSTGRES_PASSWORD" validate:"required"`

	SSLMode string `env:"POSTGRES_SSL_MODE" envDefault:"disable" validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"25" validate:"gte=1"`
	MaxIdleConns    int           `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"25" validate:"gte=0"`
	ConnMaxLifetime time.Duration `env:"POSTGRES_CONN_MAX_LIFETIME" envDefault:"5m" validate:"gte=0"`
}

// DSN строка подключения в формате lib/pq
func (p Postgres) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DBName, p.SSLMode,
	)
}

// URL строка подключения для golang-migrate
func (p Postgres) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DBName, p.SSLMode)
}

type Kafka struct {
	GroupID       string   `env:"KAFKA_GROUP_ID" envDefault:"esim-order-service" validate:"required"`
	Brokers       []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:"," validate:"required,min=1,dive,hostname_port"`
	CallbackTopic string   `env:"KAFKA_CALLBACK_TOPIC" envDefault:"payment-callbacks" validate:"required"`
	EventsTopic   string   `env:"KAFKA_EVENTS_TOPIC" envDefault:"esim-order-events" validate:"required"`

	ReaderMaxWait time.Duration `env:"KAFKA_READER_MAX_WAIT" envDefault:"10ms" validate:"gte=0"`
	BatchTimeout  time.Duration `env:"KAFKA_BATCH_TIMEOUT" envDefault:"10ms" validate:"gte=0"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379" validate:"required,hostname_port"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`
}

type Cache struct {
	Capacity int           `env:"CACHE_CAPACITY" envDefault:"1000" validate:"gte=1"`
	TTL      time.Duration `env:"CACHE_TTL" envDefault:"10m" validate:"gte=0"`
	// JanitorInterval период фоновой чистки протухших записей
	JanitorInterval time.Duration `env:"CACHE_JANITOR_INTERVAL" envDefault:"2m" validate:"gte=0"`
}

type Airalo struct {
	BaseURL string `env:"AIRALO_BASE_URL" envDefault:"https://partners-api.airalo.com" validate:"required,url"`
	// Пустые значения допустимы: тогда ключи берутся из настроек админки
	ClientID     string        `env:"AIRALO_CLIENT_ID"`
	ClientSecret string        `env:"AIRALO_CLIENT_SECRET"`
	Timeout      time.Duration `env:"AIRALO_TIMEOUT" envDefault:"30s" validate:"gt=0"`
}

type Robokassa struct {
	MerchantLogin string `env:"ROBOKASSA_MERCHANT_LOGIN"`
	Password1     string `env:"ROBOKASSA_PASSWORD1"`
	Password2     string `env:"ROBOKASSA_PASSWORD2"`
	TestMode      bool   `env:"ROBOKASSA_TEST_MODE" envDefault:"false"`
	Culture       string `env:"ROBOKASSA_CULTURE" envDefault:"en" validate:"omitempty,oneof=ru en"`
}

type Stripe struct {
	SecretKey     string        `env:"STRIPE_SECRET_KEY"`
	WebhookSecret string        `env:"STRIPE_WEBHOOK_SECRET"`
	APIBaseURL    string        `env:"STRIPE_API_BASE_URL" envDefault:"https://api.stripe.com" validate:"required,url"`
	Timeout       time.Duration `env:"STRIPE_TIMEOUT" envDefault:"30s" validate:"gt=0"`
}

type SMTP struct {
	Host     string `env:"SMTP_HOST"`
	Port     string `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"MAIL_FROM" validate:"omitempty,email"`
}

// Enabled письма отправляются, только если SMTP настроен полностью
func (s SMTP) Enabled() bool {
	return s.Host != "" && s.User != "" && s.Password != "" && s.From != ""
}

type Sweeper struct {
	Interval   time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m" validate:"gt=0"`
	PendingTTL time.Duration `env:"PENDING_ORDER_TTL" envDefault:"24h" validate:"gt=0"`
	LockTTL    time.Duration `env:"SWEEP_LOCK_TTL" envDefault:"5m" validate:"gt=0"`
}

func New() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("failed to parse env: %w", err)
	}
	return c, nil
}

func (c Config) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
