// Package config handles configuration loading, parsing, and validation
// from environment variables and an optional config file. It provides
// type-safe settings for the daemon while keeping configuration details
// separate from the logging library, which is configured through its own
// builder.
package config
