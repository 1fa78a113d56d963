package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forgo/goals/api/pkg/jwt"
)

func main() {
	privateKeyPath := flag.String("key", "./keys/private.pem", "Path to JWT private key (RS256)")
	publicKeyPath := flag.String("pub", "./keys/public.pem", "Path to write the public key with -generate")
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "Shared secret (HS256); overrides -key")
	generate := flag.Bool("generate", false, "Generate a new RSA key pair at -key and -pub before signing")
	userID := flag.String("user", "dev-user", "User ID for the token")
	email := flag.String("email", "dev@goals.local", "Email for the token")
	issuer := flag.String("issuer", "goals.forgo.software", "JWT issuer")
	expMins := flag.Int("exp", 60*24*30, "Token expiration in minutes (default: 30 days)")
	outputJSON := flag.Bool("json", false, "Output as JSON")

	flag.Parse()

	if *generate {
		for _, p := range []string{*privateKeyPath, *publicKeyPath} {
			if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
				fmt.Fprintf(os.Stderr, "Error creating key directory: %v\n", err)
				os.Exit(1)
			}
		}
		if err := jwt.GenerateKeyPair(*privateKeyPath, *publicKeyPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating keys: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s and %s\n", *privateKeyPath, *publicKeyPath)
	}

	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: *privateKeyPath,
		Secret:         *secret,
		Issuer:         *issuer,
		ExpirationMins: *expMins,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating JWT service: %v\n", err)
		fmt.Fprintf(os.Stderr, "\nGenerate keys with -generate or pass -secret\n")
		os.Exit(1)
	}

	token, err := jwtService.Sign(jwt.Claims{UserID: *userID, Email: *email})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	if *outputJSON {
		output := map[string]any{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   *expMins * 60,
			"user_id":      *userID,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(output)
		return
	}

	expTime := time.Now().Add(time.Duration(*expMins) * time.Minute)
	fmt.Println("Dev Token")
	fmt.Println("=========")
	fmt.Printf("User ID:  %s\n", *userID)
	fmt.Printf("Expires:  %s\n", expTime.Format(time.RFC3339))
	fmt.Println()
	fmt.Println(token)
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  curl -H \"Authorization: Bearer $TOKEN\" http://localhost:8080/goals")
}
