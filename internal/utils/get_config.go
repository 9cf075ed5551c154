package utils

import (
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application configuration
	AppPort            string `yaml:"APP_PORT"`
	RateLimitPerSecond string `yaml:"RATE_LIMIT_PER_SECOND"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimezone string `yaml:"DB_TIMEZONE"`

	// JWT key shared with the household account service
	JWTSecret string `yaml:"JWT_SECRET"`
}

var config Config

var defaults = map[string]string{
	"APP_PORT":              "3000",
	"RATE_LIMIT_PER_SECOND": "10",
	"DB_PORT":               "5432",
	"DB_TIMEZONE":           "UTC",
}

// LoadConfig reads config.yaml from the working directory. A missing file is
// not an error; values then come from the environment and defaults.
func LoadConfig() {
	LoadConfigFile("config.yaml")
}

func LoadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Warnw("config file not loaded", "path", path, "error", err.Error())
		return
	}

	var loaded Config
	if err := yaml.Unmarshal(file, &loaded); err != nil {
		log.Warnw("config file not parsed", "path", path, "error", err.Error())
		return
	}
	config = loaded
}

// GetConfig returns the value of key. The environment wins over config.yaml,
// which wins over the built-in default.
func GetConfig(key string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	if value := fileValue(key); value != "" {
		return value
	}
	return defaults[key]
}

// GetConfigInt is GetConfig for numeric keys. Unparsable values fall back to
// the default.
func GetConfigInt(key string) int {
	value, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		value, _ = strconv.Atoi(defaults[key])
	}
	return value
}

func fileValue(key string) string {
	switch key {
	case "APP_PORT":
		return config.AppPort
	case "RATE_LIMIT_PER_SECOND":
		return config.RateLimitPerSecond
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_TIMEZONE":
		return config.DBTimezone
	case "JWT_SECRET":
		return config.JWTSecret
	default:
		return ""
	}
}
