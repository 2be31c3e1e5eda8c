package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/bagdasarian/team-registration/internal/config"
	"github.com/bagdasarian/team-registration/internal/middleware"
)

// admintoken печатает токен для GET /register и GET /payment без teamId
func main() {
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	subject := flag.String("sub", "admin", "token subject")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	token, err := middleware.IssueAdminToken(cfg.AdminJWTSecret, *subject, *ttl, time.Now())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println(token)
}
