package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config stores runtime configuration loaded from environment variables.
type Config struct {
	Port           string
	BotToken       string
	WebhookBaseURL string
	LocalTimezone  *time.Location
}

const defaultTimezone = "Asia/Ho_Chi_Minh"

// Load reads configuration values and prepares defaults where applicable.
func Load() *Config {
	_ = godotenv.Load()

	port := getenvDefault("PORT", "8080")
	token := os.Getenv("BOT_TOKEN")
	baseURL := strings.TrimRight(os.Getenv("WEBHOOK_BASE_URL"), "/")
	timezoneName := getenvDefault("LOCAL_TIMEZONE", defaultTimezone)

	location, err := time.LoadLocation(timezoneName)
	if err != nil {
		log.Printf("config: invalid LOCAL_TIMEZONE %q, falling back to UTC+7: %v", timezoneName, err)
		location = time.FixedZone("UTC+7", 7*60*60)
	}

	return &Config{
		Port:           port,
		BotToken:       token,
		WebhookBaseURL: baseURL,
		LocalTimezone:  location,
	}
}

func getenvDefault(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		return def
	}
	return value
}
