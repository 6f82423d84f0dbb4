package config

import "time"

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./quotebook.db"

	// DefaultRemoteBaseURL points at the public placeholder API used as the remote quote source
	DefaultRemoteBaseURL = "https://jsonplaceholder.typicode.com"

	// DefaultSyncCategory is assigned to quotes that arrive from the remote source
	DefaultSyncCategory = "Server"

	// DefaultSyncInterval is the period between scheduled merge cycles
	DefaultSyncInterval = 30 * time.Second

	// DefaultSyncPageSize bounds how many remote records one cycle fetches
	DefaultSyncPageSize = 5
)
