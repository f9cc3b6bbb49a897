package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/vacayhq/vacay/internal/flagx"
	"github.com/vacayhq/vacay/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerAddr          string         `json:"server_addr"`
	DatabasePath        string         `json:"database_path"`
	UploadConcurrency   int            `json:"upload_concurrency"`
	ExportDir           string         `json:"export_dir"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Panics on read or unmarshal errors (caller should recover if desired).
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerAddr = jc.ServerAddr
	cfg.DatabasePath = jc.DatabasePath
	cfg.UploadConcurrency = jc.UploadConcurrency
	cfg.ExportDir = jc.ExportDir
	cfg.OnlineCheckInterval = time.Duration(jc.OnlineCheckInterval.Duration)
}
