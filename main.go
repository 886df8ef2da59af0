package main

import (
	"github.com/chrisdamba/bitesdash/cmd"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cmd.Execute()
}
