// Package config loads application configuration from environment
// variables with sensible defaults. For local development, a .env file
// is read by main before this package is consulted.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// DBPath is the path of the SQLite database file.
	DBPath string

	// Timezone is the IANA name of the location schedules fire in and
	// the processors read the current date from.
	Timezone string

	// BillsHour and BillsMinute are the local time of the daily
	// recurring bill run.
	BillsHour   int
	BillsMinute int

	// IncomeHour and IncomeMinute are the local time of the income
	// allocation run on the first day of every month.
	IncomeHour   int
	IncomeMinute int

	// EnableScheduler starts the background scheduler. Disable it when
	// running multiple instances against the same database.
	EnableScheduler bool
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		DBPath:          getEnv("DB_PATH", "data/hearthbudget.db"),
		Timezone:        getEnv("TZ_NAME", "Australia/Brisbane"),
		BillsHour:       getEnvAsInt("BILLS_SCHEDULE_HOUR", 6),
		BillsMinute:     getEnvAsInt("BILLS_SCHEDULE_MINUTE", 0),
		IncomeHour:      getEnvAsInt("INCOME_SCHEDULE_HOUR", 0),
		IncomeMinute:    getEnvAsInt("INCOME_SCHEDULE_MINUTE", 5),
		EnableScheduler: getEnvAsBool("ENABLE_SCHEDULER", true),
	}
}

// Location resolves the configured timezone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
