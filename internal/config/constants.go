package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the local state database
	DefaultDatabasePath = "./mybooks.db"
)
