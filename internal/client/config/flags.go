package config

import (
	"flag"
	"os"
	"time"

	"github.com/vacayhq/vacay/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-b string   path of the local session database
//	-j int      upload concurrency
//	-o string   export destination directory
//	-i int      online check interval in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-j", "-o", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "a", cfg.ServerAddr, "base URL of the backend server")
	fs.StringVar(&cfg.DatabasePath, "b", cfg.DatabasePath, "path of the local session database")
	fs.IntVar(&cfg.UploadConcurrency, "j", cfg.UploadConcurrency, "number of files uploaded in parallel")
	fs.StringVar(&cfg.ExportDir, "o", cfg.ExportDir, "destination directory for album exports")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
