package main

import (
	"os"

	"github.com/St1cky1/pomodoro-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
