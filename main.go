package main

import (
	_ "github.com/joho/godotenv/autoload"

	"github.com/hybridzdynamics/portfolio/cmd"
)

func main() {
	cmd.Execute()
}
