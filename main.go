/*
Copyright © 2025 haiminh
*/
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/haiminh/pdf-insight-be/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}
}
