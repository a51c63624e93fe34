package simplechat

import (
	"os"
	"strconv"
	"time"
)

// DefaultEndpoint is a placeholder, replace it with the public URL of the
// inference service before deploying.
const DefaultEndpoint = "YOUR_INFERENCE_API_URL/predict"

type Config struct {
	EndpointURL string
	Timeout     time.Duration
}

// LoadConfig reads the process environment once at startup. The endpoint is
// treated as immutable afterwards.
func LoadConfig() Config {
	return Config{
		EndpointURL: getEnvOrDefault("CHAT_API_ENDPOINT", DefaultEndpoint),
		Timeout:     time.Duration(getEnvAsIntOrDefault("CHAT_API_TIMEOUT_SECONDS", 30)) * time.Second,
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
