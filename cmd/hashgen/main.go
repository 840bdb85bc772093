package main

//// Small CLI tool that generates the bcrypt hash expected in the
//// CREATIVE_ADMIN_PASSWORD_HASH env var when provisioning the admin account.

import (
	"flag"
	"fmt"
	"os"

	"github.com/hossin-jomm/creative-backend/pkg"
)

func main() {
	password := flag.String("password", "", "admin password to hash")
	flag.Parse()

	if *password == "" {
		fmt.Println("Usage: hashgen -password <admin-password>")
		os.Exit(1)
	}

	hash, err := pkg.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error: failed to hash password: %v\n", err)
		os.Exit(1)
	}

	// sanity check before handing the hash out
	if !pkg.CheckPasswordHash(*password, hash) {
		fmt.Println("Error: generated hash failed verification")
		os.Exit(1)
	}

	fmt.Println(hash)
}
