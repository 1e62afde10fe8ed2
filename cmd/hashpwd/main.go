package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/auraluxe/auraluxe-backend/pkg/config"
	"github.com/auraluxe/auraluxe-backend/pkg/security"
)

// hashpwd prints the Argon2id hash for the admin password so it can be set as
// AURALUXE_ADMIN_PASSWORD_HASH. Reads the password from stdin to keep it out
// of shell history.
func main() {
	_ = godotenv.Load()

	fmt.Fprint(os.Stderr, "password: ")
	reader := bufio.NewReader(os.Stdin)
	password, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintf(os.Stderr, "read password: %v\n", err)
		os.Exit(1)
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		fmt.Fprintln(os.Stderr, "password must not be empty")
		os.Exit(1)
	}

	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
