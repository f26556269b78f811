package main

import (
	"os"

	"github.com/GoShooterPortal/GoShooterPortal/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
