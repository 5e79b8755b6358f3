package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Chain    ChainConfig
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type ChainConfig struct {
	RPCURL          string
	ContractAddress string
	// OperatorKey is the hex-encoded private key that signs every outgoing
	// transaction. Minted tokens go to the buyer's wallet; gas is always
	// paid by this account.
	OperatorKey     string
	ConfirmTimeout  time.Duration
	MetadataBaseURL string
	// ReconcileInterval controls how often the mint reconcile worker scans
	// transfer logs for mirror rows the purchase flow failed to write.
	ReconcileInterval time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Server:   GetServerConfig(),
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Auth:     GetAuthConfig(),
		Chain:    GetChainConfig(),
	}
}

func LoadTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: "8081"},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5433",
			User:     "postgres",
			Password: "postgres",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     "6380",
			Password: "",
			DB:       1,
		},
		Auth: AuthConfig{
			JWTSecret: "test-secret",
			TokenTTL:  30 * time.Minute,
		},
		Chain: ChainConfig{
			RPCURL:            "http://localhost:8545",
			ContractAddress:   "0x0000000000000000000000000000000000000000",
			OperatorKey:       "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
			ConfirmTimeout:    5 * time.Second,
			MetadataBaseURL:   "http://localhost:8081",
			ReconcileInterval: time.Second,
		},
	}
}

func GetServerConfig() ServerConfig {
	return ServerConfig{
		Port: getEnv("SERVER_PORT", "8080"),
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "ticketera"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetAuthConfig() AuthConfig {
	ttl, err := strconv.Atoi(getEnv("ACCESS_TOKEN_EXPIRE_MINUTES", "30"))
	if err != nil {
		panic(err)
	}

	return AuthConfig{
		JWTSecret: getEnv("SECRET_KEY", "a_super_secret_key_that_should_be_in_env"),
		TokenTTL:  time.Duration(ttl) * time.Minute,
	}
}

func GetChainConfig() ChainConfig {
	confirm, err := strconv.Atoi(getEnv("CHAIN_CONFIRM_TIMEOUT_SECONDS", "90"))
	if err != nil {
		panic(err)
	}
	reconcile, err := strconv.Atoi(getEnv("CHAIN_RECONCILE_INTERVAL_SECONDS", "60"))
	if err != nil {
		panic(err)
	}

	return ChainConfig{
		RPCURL:            getEnv("CHAIN_RPC_URL", "http://127.0.0.1:8545"),
		ContractAddress:   getEnv("CONTRACT_ADDRESS", ""),
		OperatorKey:       getEnv("PRIVATE_KEY", ""),
		ConfirmTimeout:    time.Duration(confirm) * time.Second,
		MetadataBaseURL:   getEnv("METADATA_BASE_URL", "https://api.ticketera.com"),
		ReconcileInterval: time.Duration(reconcile) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
