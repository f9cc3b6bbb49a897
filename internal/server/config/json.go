package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vacayhq/vacay/internal/flagx"
	"github.com/vacayhq/vacay/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "15m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddr                 string         `json:"endpoint_addr"`
	DatabaseDSN                  string         `json:"database_dsn"`
	SecretKey                    string         `json:"secret_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration"`
	S3AccessKey                  string         `json:"s3_access_key"`
	S3SecretKey                  string         `json:"s3_secret_key"`
	S3Bucket                     string         `json:"s3_bucket"`
	S3Region                     string         `json:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint"`
	S3PublicBaseURL              string         `json:"s3_public_base_url"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config flags; if
// neither is set, no JSON file is loaded. An unreadable or invalid file
// panics: a config file that exists but cannot be used is a startup error.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.AccessTokenValidityDuration = time.Duration(c.AccessTokenValidityDuration.Duration)
	config.RefreshTokenValidityDuration = time.Duration(c.RefreshTokenValidityDuration.Duration)
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
	config.S3Bucket = c.S3Bucket
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3PublicBaseURL = c.S3PublicBaseURL
}
