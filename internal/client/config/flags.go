package config

import (
	"flag"
	"os"

	"github.com/phoenix-letters/phoenix-go/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-u string   base URL of the Phoenix API (default from Config)
//	-f string   path to the token file (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "u", cfg.APIBaseURL, "base URL of the Phoenix API")
	fs.StringVar(&cfg.TokenFile, "f", cfg.TokenFile, "path to the token file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
