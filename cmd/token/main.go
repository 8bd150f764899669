// Command token is an operator tool: it mints a bearer token for an
// identity using the server's JWT settings, or prints an argon2id hash for
// ADMIN_PASSWORD_HASH.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/suryaansh001/shayari-backend/internal/auth"
	"github.com/suryaansh001/shayari-backend/internal/config"
	"github.com/suryaansh001/shayari-backend/internal/tokens"
	"github.com/suryaansh001/shayari-backend/pkg/logger"
)

func main() {
	subject := flag.String("sub", "admin", "identity to embed in the token")
	hash := flag.String("hash", "", "print an argon2id hash of this password and exit")
	flag.Parse()

	if *hash != "" {
		h, err := auth.HashPassword(*hash)
		if err != nil {
			logger.Fatalf("hash password: %v", err)
		}
		fmt.Println(h)
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET must be set to mint tokens")
		os.Exit(2)
	}
	tok, err := tokens.NewService(cfg.JWT.Secret, cfg.JWT.TokenTTL).Issue(*subject)
	if err != nil {
		logger.Fatalf("issue token: %v", err)
	}
	fmt.Println(tok)
}
