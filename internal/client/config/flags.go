package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   SQLite database file
//	-q int      key-value tier budget in bytes
//	-p string   reel proxy base URL
//	-t int      reel request timeout in minutes
//
// Only the flags above are read from os.Args; see flagx.FilterArgs.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-q", "-p", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "SQLite database file")
	fs.Int64Var(&cfg.KVBudget, "q", cfg.KVBudget, "key-value storage budget (bytes)")
	fs.StringVar(&cfg.ProxyEndpoint, "p", cfg.ProxyEndpoint, "reel proxy base URL")
	reelTimeout := fs.Int("t", int(cfg.ReelTimeout.Minutes()), "reel request timeout (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ReelTimeout = time.Duration(*reelTimeout) * time.Minute
}
