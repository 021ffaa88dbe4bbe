// Command issue-token prints a signed access token for an existing user id.
// Identity is owned by the upstream sign-in provider; this is for local runs
// and operators.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/Sama2511/LJM-sub000/internal/config"
	"github.com/Sama2511/LJM-sub000/internal/domain"
	"github.com/Sama2511/LJM-sub000/internal/security"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	userID := flag.Int("user", 0, "User id to embed in the token")
	email := flag.String("email", "", "Email claim")
	role := flag.String("role", string(domain.UserRoleUser), "Role claim (informational)")
	flag.Parse()

	if *userID <= 0 {
		log.Fatal("-user is required")
	}
	if !domain.UserRole(*role).Valid() {
		log.Fatalf("unknown role %q", *role)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	tm := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	token, err := tm.GenerateAccessToken(int32(*userID), *email, *role)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
