// Command devtoken prints a bearer token signed with JWT_SECRET, for calling a
// local server without the identity provider.
//
//	devtoken -user u1 -email u1@example.com -name Uma
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/mmynk/households/internal/auth"
	"github.com/mmynk/households/internal/models"
)

func main() {
	userID := flag.String("user", "", "user ID (required)")
	email := flag.String("email", "", "email claim")
	name := flag.String("name", "", "display name claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if *userID == "" || secret == "" {
		fmt.Fprintln(os.Stderr, "usage: JWT_SECRET=... devtoken -user ID [-email E] [-name N]")
		os.Exit(2)
	}

	token, err := auth.NewJWTManager(secret, *ttl).Generate(&models.User{
		ID:          *userID,
		Email:       *email,
		DisplayName: *name,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
