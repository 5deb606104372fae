package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log"
)

const keySize = 32

func generateKey() (string, error) {
	key := make([]byte, keySize)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

func main() {
	identitySecret, err := generateKey()
	if err != nil {
		log.Fatalf("Failed to generate identity secret: %v", err)
	}
	reactionsKey, err := generateKey()
	if err != nil {
		log.Fatalf("Failed to generate reactions key: %v", err)
	}

	fmt.Println("=================================================")
	fmt.Println("  unforum secrets (256 bit, base64)")
	fmt.Println("=================================================")
	fmt.Println()
	fmt.Println("Add these to your config/private.yaml:")
	fmt.Printf("identity_secret: \"%s\"\n", identitySecret)
	fmt.Printf("reactions_key: \"%s\"\n", reactionsKey)
	fmt.Println()
	fmt.Println("IMPORTANT:")
	fmt.Println("- identity_secret must match the identity provider's signing key")
	fmt.Println("- rotating reactions_key forgets who already liked what")
	fmt.Println("- Never commit these to version control!")
	fmt.Println("=================================================")
}
