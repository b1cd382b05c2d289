//go:build ignore

package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Usage: go run admin_token.go -sub editor@example.com -ttl 24h
func main() {
	fmt.Println("🔑 Admin Token Generator")
	fmt.Println("------------------------")

	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
		fmt.Println("Continuing with environment variables...")
	}

	envFilePath := getEnv("ENV_FILE_PATH", ".env")
	secret := getEnv("ADMIN_JWT_SECRET", "")

	if secret == "" {
		fmt.Println("⚠️  ADMIN_JWT_SECRET is not set, generating one...")
		secret = strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
		if err := updateEnvFile("ADMIN_JWT_SECRET", secret, envFilePath); err != nil {
			fmt.Printf("❌ Error updating %s: %v\n", envFilePath, err)
			os.Exit(1)
		}
		fmt.Printf("📝 Saved the new secret to %s. Restart the server to pick it up.\n", envFilePath)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  *subject,
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(*ttl).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		fmt.Printf("❌ Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Token valid for %s:\n\n%s\n\n", ttl.String(), signed)
	fmt.Println("Send it as: Authorization: Bearer <token>")
}

func updateEnvFile(key, value, envFilePath string) error {
	content, err := os.ReadFile(envFilePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("could not read %s: %v", envFilePath, err)
	}

	lines := []string{}
	if len(content) > 0 {
		lines = strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	}
	found := false
	newLines := []string{}

	// handles spaces around =
	regex := regexp.MustCompile(`^` + regexp.QuoteMeta(key) + `\s*=.*`)

	for _, line := range lines {
		if regex.MatchString(line) {
			newLines = append(newLines, fmt.Sprintf("%s=%s", key, value))
			found = true
		} else {
			newLines = append(newLines, line)
		}
	}

	if !found {
		newLines = append(newLines, fmt.Sprintf("%s=%s", key, value))
	}

	output := strings.Join(newLines, "\n") + "\n"
	return os.WriteFile(envFilePath, []byte(output), 0600)
}

// getEnv returns the value of the environment variable key or a fallback value.
func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
