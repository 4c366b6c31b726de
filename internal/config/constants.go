package config

const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./orgauth.db"

	// DefaultProjectName is reported in logs and the health endpoint
	DefaultProjectName = "User Organisation Service"

	// DefaultTokenIssuer is the "iss" claim of issued access tokens
	DefaultTokenIssuer = "orgauth"
)
