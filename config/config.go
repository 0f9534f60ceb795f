package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MinSupport       float64
	MinLift          float64
	MaxItemsetLength int
	BinCount         int

	TopRules       int
	TopTargetRules int
	TargetItems    []string

	MaxConcurrency int
	MaxRetries     int

	CSVInputPath  string
	CSVOutputPath string
	Debug         bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "miner"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "miner123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rental_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MinSupport:       getEnvFloat("MIN_SUPPORT", 0.05),
		MinLift:          getEnvFloat("MIN_LIFT", 1.2),
		MaxItemsetLength: getEnvInt("MAX_ITEMSET_LENGTH", 10),
		BinCount:         getEnvInt("BIN_COUNT", 3),

		TopRules:       getEnvInt("TOP_RULES", 10),
		TopTargetRules: getEnvInt("TOP_TARGET_RULES", 5),
		TargetItems:    getEnvList("TARGET_ITEMS", "Rent_High,Rent_Low"),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		CSVInputPath:  getEnv("CSV_INPUT_PATH", "./data/apartments_for_rent_classified_10K.csv"),
		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "./output/association_rules.csv"),
		Debug:         getEnvBool("DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// CutPoints returns the quantile probabilities {0, 1/B, ..., 1} used for
// equal-frequency binning.
func (c *Config) CutPoints() []float64 {
	points := make([]float64, c.BinCount+1)
	for i := 0; i <= c.BinCount; i++ {
		points[i] = float64(i) / float64(c.BinCount)
	}
	return points
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
