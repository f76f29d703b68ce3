package cli

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	Timeout   time.Duration
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("SIGNUP_SERVER", "http://localhost:8080"),
		Output:    OutputText,
		Timeout:   30 * time.Second,
	}
}

// credentials are the teacher username and password for teacher-gated commands
type credentials struct {
	Username string
	Password string
}

// addCredentialFlags binds --username/--password with env fallbacks
func addCredentialFlags(cmd *cobra.Command, creds *credentials) {
	cmd.Flags().StringVarP(&creds.Username, "username", "u", os.Getenv("SIGNUP_USERNAME"), "Teacher username (env: SIGNUP_USERNAME)")
	cmd.Flags().StringVarP(&creds.Password, "password", "p", os.Getenv("SIGNUP_PASSWORD"), "Teacher password (env: SIGNUP_PASSWORD)")
}

func (c credentials) validate() error {
	if c.Username == "" || c.Password == "" {
		return errors.New("teacher credentials required: --username and --password (or SIGNUP_USERNAME and SIGNUP_PASSWORD)")
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
