package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultMaxUploadBytes = 16 << 20

var portFlag = flag.Int("port", 3000, "HTTP server port")

// Config carries the web inspector's runtime settings. The port comes from
// the -port flag; the rest from a local .env file or the environment.
type Config struct {
	ServerPort     int
	LogLevel       string
	MaxUploadBytes int64
}

// LoadConfig reads the .env file (if present) and the environment. The
// caller is expected to have run flag.Parse already.
func LoadConfig() Config {
	godotenv.Load(".env")

	cfg := Config{
		ServerPort:     *portFlag,
		LogLevel:       os.Getenv("LOG_LEVEL"),
		MaxUploadBytes: defaultMaxUploadBytes,
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			cfg.MaxUploadBytes = n
		}
	}
	return cfg
}
