package config

import (
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/andresuchdata/ledquote/internal/domain"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
	Storage  StorageConfig
	Quote    QuoteConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type CacheConfig struct {
	Enabled         bool
	RedisURL        string
	RedisHost       string
	RedisPort       string
	RedisPassword   string
	RedisDB         int
	QuoteTTLSeconds int
}

// Catalog sources.
const (
	SourceFile      = "file"
	SourcePostgres  = "postgres"
	SourceS3        = "s3"
	SourceFirestore = "firestore"
)

// CatalogConfig selects where the inventory catalog and stock ledger are read from.
// For the file source the paths are local files; for s3 they are object keys.
type CatalogConfig struct {
	Source               string
	CatalogPath          string
	LedgerPath           string
	FirestoreProject     string
	FirestoreCredentials string
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// QuoteConfig holds the defaults applied to project requests that omit them.
type QuoteConfig struct {
	ExchangeRate  float64
	TaxRate       float64
	Currency      string
	PriceBasis    string
	DeliveryWeeks int
	PaymentTerms  []string
}

// DefaultTerms turns the configured defaults into quote terms. Payment terms are
// "Name:percent" pairs; malformed entries are skipped.
func (q QuoteConfig) DefaultTerms() domain.Terms {
	terms := domain.Terms{
		PriceBasis:    q.PriceBasis,
		DeliveryWeeks: q.DeliveryWeeks,
		TaxRate:       domain.Number(q.TaxRate),
	}
	for _, raw := range q.PaymentTerms {
		name, pct, ok := strings.Cut(raw, ":")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		terms.Payment = append(terms.Payment, domain.PaymentTerm{
			Name:    strings.TrimSpace(name),
			Percent: domain.Number(domain.ParseNumber(pct)),
		})
	}
	return terms
}

var (
	once     sync.Once
	instance *Config
)

// Load reads .env and the process environment once and returns the shared config.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.New()
		v.AutomaticEnv()
		instance = New(v)
	})

	return instance
}

// New builds a Config from v after applying defaults.
func New(v *viper.Viper) *Config {
	setDefaults(v)

	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: splitList(v.GetStringSlice("SERVER_ALLOWED_ORIGINS")),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt("DB_MAX_CONNS"),
		},
		Cache: CacheConfig{
			Enabled:         v.GetBool("CACHE_ENABLED"),
			RedisURL:        v.GetString("REDIS_URL"),
			RedisHost:       v.GetString("REDIS_HOST"),
			RedisPort:       v.GetString("REDIS_PORT"),
			RedisPassword:   v.GetString("REDIS_PASSWORD"),
			RedisDB:         v.GetInt("REDIS_DB"),
			QuoteTTLSeconds: v.GetInt("CACHE_QUOTE_TTL_SECONDS"),
		},
		Catalog: CatalogConfig{
			Source:               strings.ToLower(v.GetString("CATALOG_SOURCE")),
			CatalogPath:          v.GetString("CATALOG_PATH"),
			LedgerPath:           v.GetString("LEDGER_PATH"),
			FirestoreProject:     v.GetString("FIRESTORE_PROJECT_ID"),
			FirestoreCredentials: v.GetString("FIRESTORE_CREDENTIALS_JSON"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("STORAGE_ENDPOINT"),
			AccessKey: v.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: v.GetString("STORAGE_SECRET_KEY"),
			Bucket:    v.GetString("STORAGE_BUCKET"),
			Region:    v.GetString("STORAGE_REGION"),
			UseSSL:    v.GetBool("STORAGE_USE_SSL"),
		},
		Quote: QuoteConfig{
			ExchangeRate:  v.GetFloat64("QUOTE_EXCHANGE_RATE"),
			TaxRate:       v.GetFloat64("QUOTE_TAX_RATE"),
			Currency:      v.GetString("QUOTE_CURRENCY"),
			PriceBasis:    v.GetString("QUOTE_PRICE_BASIS"),
			DeliveryWeeks: v.GetInt("QUOTE_DELIVERY_WEEKS"),
			PaymentTerms:  splitList(v.GetStringSlice("QUOTE_PAYMENT_TERMS")),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 15)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "ledquote")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("CACHE_ENABLED", false)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("REDIS_HOST", "127.0.0.1")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_QUOTE_TTL_SECONDS", 300)
	v.SetDefault("CATALOG_SOURCE", SourceFile)
	v.SetDefault("CATALOG_PATH", "./data/catalog.yaml")
	v.SetDefault("LEDGER_PATH", "./data/ledger.yaml")
	v.SetDefault("STORAGE_REGION", "us-east-1")
	v.SetDefault("STORAGE_USE_SSL", true)
	v.SetDefault("QUOTE_EXCHANGE_RATE", 90)
	v.SetDefault("QUOTE_TAX_RATE", 18)
	v.SetDefault("QUOTE_CURRENCY", "INR")
	v.SetDefault("QUOTE_PRICE_BASIS", "Ex-works Mumbai")
	v.SetDefault("QUOTE_DELIVERY_WEEKS", 10)
	v.SetDefault("QUOTE_PAYMENT_TERMS", []string{"Advance:60", "Delivery:30", "Installation:10"})
}

// splitList accepts both a real list and a single comma separated env value.
func splitList(values []string) []string {
	var out []string
	for _, raw := range values {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
