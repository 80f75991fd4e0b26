package main

import (
	"github.com/joho/godotenv"

	"github.com/elliottsj/botbot-web/cmd"
)

func main() {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cmd.Execute()
}
