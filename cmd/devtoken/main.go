// devtoken prints a signed access token for local API testing. Token
// issuance is normally handled by the identity service; this stands in
// for it during development.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/notetrackhq/notetrack/pkg/config"
	"github.com/notetrackhq/notetrack/pkg/jwt"
)

func main() {
	userFlag := flag.String("user", "", "user id to mint the token for (defaults to a random uuid)")
	emailFlag := flag.String("email", "dev@example.com", "email claim")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	userID := uuid.New()
	if *userFlag != "" {
		userID, err = uuid.Parse(*userFlag)
		if err != nil {
			log.Fatalf("Invalid user id: %v", err)
		}
	}

	manager := jwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)
	token, err := manager.GenerateAccessToken(userID, *emailFlag)
	if err != nil {
		log.Fatalf("Failed to generate token: %v", err)
	}

	fmt.Printf("user_id: %s\n", userID)
	fmt.Printf("token:   %s\n", token)
	fmt.Printf("expires: %s\n", manager.GetAccessExpiry())
}
