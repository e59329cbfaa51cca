package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/propfolio/propfolio/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Cache      CacheConfig
	Email      EmailConfig
	Documents  DocumentConfig
	Payment    PaymentConfig
	Portal     PortalConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

type CacheConfig struct {
	Enabled bool
}

type EmailConfig struct {
	Enabled     bool
	APIKey      string
	FromAddress string
	ReplyTo     string
}

// DocumentConfig controls document number generation and default dating.
// Generated numbers follow the pattern {prefix}-{year}-{padded sequence},
// e.g. INV-2026-001. The sequence resets per document type per year.
type DocumentConfig struct {
	InvoicePrefix         string
	QuotePrefix           string
	NumberSuffixLength    int
	DefaultDueDays        int
	DefaultQuoteValidDays int
}

type PaymentConfig struct {
	WebhookSecret string
}

type PortalConfig struct {
	BaseURL      string
	BusinessName string
}

func NewConfig() (*Configuration, error) {
	// Best effort .env load for local development
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/propfolio")

	v.SetEnvPrefix("PROPFOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeAPI)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("documents.invoiceprefix", "INV")
	v.SetDefault("documents.quoteprefix", "QUO")
	v.SetDefault("documents.numbersuffixlength", 3)
	v.SetDefault("documents.defaultduedays", 14)
	v.SetDefault("documents.defaultquotevaliddays", 30)
	v.SetDefault("portal.baseurl", "http://localhost:8080")
	v.SetDefault("portal.businessname", "Propfolio")
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// This is useful for running scripts or other non-web applications
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Documents: DocumentConfig{
			InvoicePrefix:         "INV",
			QuotePrefix:           "QUO",
			NumberSuffixLength:    3,
			DefaultDueDays:        14,
			DefaultQuoteValidDays: 30,
		},
		Portal: PortalConfig{
			BaseURL:      "http://localhost:8080",
			BusinessName: "Propfolio",
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
