package main

import (
	"os"

	"github.com/Saba3939/oneday-todo/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
