package providers

import "time"

const (
	// openTimeout bounds connecting to the database and applying migrations.
	openTimeout = 30 * time.Second
)
