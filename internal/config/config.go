package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN returns the GORM/pgx connection string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the database URL used by the migration runner.
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// JWTConfig holds token verification settings.
type JWTConfig struct {
	Secret string
}

// KafkaConfig holds event broker settings.
type KafkaConfig struct {
	Brokers     []string
	GroupPrefix string
}

// SMTPConfig holds outbound mail settings. An empty Host disables delivery.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// ServiceConfig holds all configuration for the hotel service.
type ServiceConfig struct {
	Port     string
	AppEnv   string
	DBConfig DatabaseConfig
	JWT      JWTConfig
	Kafka    KafkaConfig
	SMTP     SMTPConfig
}

// Load reads configuration from HOTEL_-prefixed environment variables with
// development defaults.
func Load() (*ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("HOTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("SERVICE_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "hotel")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")
	v.SetDefault("KAFKA_GROUP_PREFIX", "hotel.")
	v.SetDefault("SMTP_PORT", 587)

	jwtSecret := v.GetString("JWT_SECRET")
	if jwtSecret == "" && v.GetString("APP_ENV") != "development" {
		return nil, fmt.Errorf("HOTEL_JWT_SECRET is required outside development")
	}
	if jwtSecret == "" {
		jwtSecret = "dev-only-secret"
	}

	return &ServiceConfig{
		Port:   ":" + strings.TrimPrefix(v.GetString("SERVICE_PORT"), ":"),
		AppEnv: v.GetString("APP_ENV"),
		DBConfig: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		JWT: JWTConfig{Secret: jwtSecret},
		Kafka: KafkaConfig{
			Brokers:     strings.Split(v.GetString("KAFKA_BROKERS"), ","),
			GroupPrefix: v.GetString("KAFKA_GROUP_PREFIX"),
		},
		SMTP: SMTPConfig{
			Host:     v.GetString("SMTP_HOST"),
			Port:     v.GetInt("SMTP_PORT"),
			Username: v.GetString("SMTP_USERNAME"),
			Password: v.GetString("SMTP_PASSWORD"),
			From:     v.GetString("SMTP_FROM"),
		},
	}, nil
}
