// Command hash-generator prints bcrypt hashes for the passwords given on
// the command line. It is a convenience for seeding member rows by hand,
// for example when preparing fixtures for a local database.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor (4-31)")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password [password ...]")
		os.Exit(1)
	}

	for _, password := range passwords {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), *cost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(hash))
	}
}
