// Command hash-generator prints bcrypt hashes for seeding accounts directly
// into the database, or checks a password against an existing hash.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/stockroom-dev/stockroom-api/internal/domain"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := pflag.NewFlagSet("hash-generator", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	cost := flags.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	check := flags.String("check", "", "compare the password against this hash instead of hashing")

	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: hash-generator [--cost N] [--check HASH] PASSWORD...")
		return 2
	}

	hasher := auth.NewBcryptHasher(*cost)

	if *check != "" {
		if flags.NArg() != 1 {
			fmt.Fprintln(stderr, "--check takes exactly one password")
			return 2
		}
		err := hasher.Compare(*check, flags.Arg(0))
		switch {
		case err == nil:
			fmt.Fprintln(stdout, "match")
			return 0
		case errors.Is(err, auth.ErrInvalidCredentials):
			fmt.Fprintln(stdout, "no match")
			return 1
		default:
			fmt.Fprintf(stderr, "compare: %v\n", err)
			return 1
		}
	}

	status := 0
	for i, password := range flags.Args() {
		if err := checkLength(password); err != nil {
			fmt.Fprintf(stderr, "password %d: %v\n", i+1, err)
			status = 1
			continue
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(stderr, "password %d: %v\n", i+1, err)
			status = 1
			continue
		}
		fmt.Fprintln(stdout, hash)
	}
	return status
}

// checkLength applies the same bounds account registration enforces.
func checkLength(password string) error {
	switch {
	case len(password) < domain.MinPasswordLength:
		return fmt.Errorf("must be at least %d characters long", domain.MinPasswordLength)
	case len(password) > domain.MaxPasswordLength:
		return fmt.Errorf("must be at most %d characters long", domain.MaxPasswordLength)
	}
	return nil
}
