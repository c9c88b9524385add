package main

import (
	"os"

	_ "depositrecon/docs"
	"depositrecon/internal/commands"
)

// @title Deposit Reconciliation API
// @version 1.0
// @description Daily deposit reconciliation against the settlement API

// @host localhost:8080
// @BasePath /

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
