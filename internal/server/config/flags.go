package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-p string   listen port
//	-m string   provider video model
//	-e string   provider base URL
//	-i int      poll interval, seconds
//	-n int      poll attempt ceiling
//	-b string   S3 archive bucket
//
// Secrets are only accepted from the environment.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-p", "-m", "-e", "-i", "-n", "-b"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Port, "p", config.Port, "port to listen on")
	fs.StringVar(&config.Model, "m", config.Model, "provider video model")
	fs.StringVar(&config.ProviderEndpoint, "e", config.ProviderEndpoint, "provider base URL")
	pollInterval := fs.Int("i", int(config.PollInterval.Seconds()), "poll interval (in seconds)")
	fs.IntVar(&config.PollMaxAttempts, "n", config.PollMaxAttempts, "maximum poll attempts")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 archive bucket")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.PollInterval = time.Duration(*pollInterval) * time.Second
}
