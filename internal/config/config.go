package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config
// files. It is loaded once at startup and treated as immutable afterwards.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Path string
	}
	JWT struct {
		Secret     string
		Issuer     string
		Audience   string
		TTLMinutes int
	}
	Storage struct {
		Driver    string // "local" or "s3"
		LocalDir  string
		BaseURL   string
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv()

	v := viper.New()
	v.SetEnvPrefix("NZWALKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.addr", "0.0.0.0:8080")
	v.SetDefault("database.path", "data/nzwalks.db")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "nzwalks-api")
	v.SetDefault("jwt.audience", "nzwalks-clients")
	v.SetDefault("jwt.ttlminutes", 15)
	v.SetDefault("storage.driver", "local")
	v.SetDefault("storage.localdir", "data/images")
	v.SetDefault("storage.baseurl", "http://localhost:8080/images")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "walk-images")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv() {
	file, err := os.Open(".env")
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
