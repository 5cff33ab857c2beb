package main

// Exit codes
const (
	ExitSuccess = 0 // Success, including "nothing to delete" and operator cancellation
	ExitError   = 1 // Store not found, invalid selection, or store failure
)
