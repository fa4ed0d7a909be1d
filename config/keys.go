package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
)

// JWTSigningKey returns the configured signing key, generating a random
// one for local development when JWT_SECRET is unset (sessions then do not
// survive a restart).
func JWTSigningKey() string {
	if key := os.Getenv("JWT_SECRET"); key != "" {
		return key
	}
	log.Println("JWT_SECRET not set, generating an ephemeral key")
	return GenerateRandomKey()
}

func GenerateRandomKey() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		log.Fatalf("Failed to generate random key: %v", err)
	}
	return hex.EncodeToString(b)
}
