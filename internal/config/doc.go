// Package config loads service configuration from the environment with
// an optional .env file for local development. Each component owns its
// config struct; this package only aggregates them.
package config
