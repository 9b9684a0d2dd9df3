package main

import (
	"bank_backend/internal/config" // Custom package for configuration
	"bank_backend/internal/utils"  // Custom package for utilities
	"errors"                       // Usage errors
	"fmt"                          // Output formatting
	"io"                           // Output destination
	"os"                           // Arguments and exit codes

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Prints a bcrypt digest for seeding users or PINs directly in the database
func main() {
	cfg := config.LoadConfig() // Load configuration for the bcrypt cost
	if err := run(os.Args[1:], cfg.BCryptCost, os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

// run hashes the single secret in args and writes the digest to out
func run(args []string, cost int, out io.Writer) error {
	if len(args) != 1 || args[0] == "" {
		return errors.New("usage: hashgen <secret>")
	}
	digest, err := utils.NewHasher(cost).Hash(args[0])
	if err != nil {
		return fmt.Errorf("hash secret: %w", err)
	}
	_, err = fmt.Fprintln(out, digest)
	return err
}
