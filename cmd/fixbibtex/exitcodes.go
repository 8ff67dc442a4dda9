package main

// Exit codes returned by the fixbibtex CLI.
const (
	ExitSuccess = 0 // Success
	ExitError   = 1 // General error (usage, parse failure, runtime failure)
)
