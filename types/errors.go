package types

import "fmt"

// ValidationError reports missing or malformed client input. Handlers map
// it to a 400.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConfigurationError reports a required configuration value that is
// absent. It is raised once at startup, never during request handling.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// UpstreamError reports a non-success response from an external
// collaborator (object storage, the Docling parser or the embeddings
// API). StatusCode is the upstream HTTP status when one was received.
type UpstreamError struct {
	Service    string
	StatusCode int
	Detail     string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s request failed (%d): %s", e.Service, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s request failed: %s", e.Service, e.Detail)
}

// PersistenceError reports a datastore operation that failed. A failed
// document write aborts ingestion; a failed fragment batch write is
// logged and skipped by the pipeline instead.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
