package main

import (
	"FinTrack/pkg/log"
	"errors"
	"fmt"
	"github.com/joho/godotenv"
	"golang.org/x/net/context"
	"os"
	"os/signal"
	"syscall"
)

const defaultAPIURL = "http://localhost:3000/api/v1"

func main() {
	_ = godotenv.Load()
	if os.Getenv("APP_ENV") == "" {
		os.Setenv("APP_ENV", "cli")
	}
	if os.Getenv("LOG_LEVEL") == "" {
		os.Setenv("LOG_LEVEL", "warn")
	}
	logger := log.NewLogger()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		printUsage()
		return
	}

	statePath, err := defaultStatePath()
	if err != nil {
		logger.Fatal(err)
	}
	state, err := openState(statePath)
	if err != nil {
		logger.Fatal(err)
	}

	apiURL := os.Getenv("FINTRACK_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := newApp(apiURL, state, logger, os.Stdout, os.Stderr)
	if err := app.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		if errors.Is(err, errUnknownCommand) {
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
			printUsage()
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("FinTrack CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  fintrack <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  register          Create an account")
	fmt.Println("  login             Sign in and remember the session")
	fmt.Println("  logout            Revoke the current session")
	fmt.Println("  workplaces        List active workplaces, current one marked with *")
	fmt.Println("  create-workplace  Create a workplace")
	fmt.Println("  deactivate        Deactivate a workplace")
	fmt.Println("  switch            Make a workplace current")
	fmt.Println("  add               Record an income or expense")
	fmt.Println("  delete            Delete a transaction")
	fmt.Println("  list              List transactions of the current workplace")
	fmt.Println("  summary           Show totals for a month or a day")
	fmt.Println("  watch             Keep totals on screen and refresh on every change")
	fmt.Println("  report            Download a PDF report: monthly, annual or custom")
	fmt.Println("  help              Show this help message")
	fmt.Println("\nRun 'fintrack <command> -h' for more information on a command.")
	fmt.Println("The API root is read from FINTRACK_API_URL (default " + defaultAPIURL + ").")
}
