package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName      string
	Env          string
	Debug        bool
	APIBaseURL   string
	AdminBaseURL string
	Timeout      time.Duration
	TokenFile    string
	// Add more fields as needed
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:      os.Getenv("APP_NAME"),
			Env:          os.Getenv("APP_ENV"),
			Debug:        os.Getenv("DEBUG") == "true",
			APIBaseURL:   apiBaseURL(),
			AdminBaseURL: adminBaseURL(),
			Timeout:      apiTimeout(),
			TokenFile:    os.Getenv("TOKEN_FILE"),
		}
	})
}

func apiBaseURL() string {
	if u := os.Getenv("API_URL"); u != "" {
		return u
	}
	return "http://localhost:8080/api"
}

// adminBaseURL is where the admin CRUD surface lives. Defaults to the same host
// as the customer-facing API; the two surfaces use different path prefixes.
func adminBaseURL() string {
	if u := os.Getenv("ADMIN_API_URL"); u != "" {
		return u
	}
	return apiBaseURL()
}

func apiTimeout() time.Duration {
	if s := os.Getenv("API_TIMEOUT_MS"); s != "" {
		if ms, err := strconv.Atoi(s); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return 30 * time.Second
}
