package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

func generatePasswordHash(password string, cost int) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func main() {
	password := flag.String("password", "ChangeMe2026!", "password to hash")
	cost := flag.Int("cost", 12, "bcrypt cost")
	flag.Parse()

	hash, err := generatePasswordHash(*password, *cost)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
