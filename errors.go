package followerwatch

import "fmt"

// ConfigError indicates that required configuration is missing or invalid.
// It is always detected before any network call is made.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// TransportError is a non-success HTTP response from the GitHub API, from
// either the follower listing or the issue creation endpoint. It carries
// the status so the caller can log what the API actually said.
type TransportError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("error during GitHub API call: %v (url: %s)", e.Status, e.URL)
}

// PersistenceReadError indicates that an existing snapshot file could not
// be read or did not contain a valid follower list. A missing snapshot is
// not an error. Callers recover by treating the previous state as empty.
type PersistenceReadError struct {
	Path string
	Err  error
}

func (e *PersistenceReadError) Error() string {
	return fmt.Sprintf("reading snapshot %s: %v", e.Path, e.Err)
}

func (e *PersistenceReadError) Unwrap() error { return e.Err }
