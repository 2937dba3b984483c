// Package config loads application settings from the environment (with an
// optional config file) via viper and validates them before the rest of
// the application sees them. Settings are grouped into Server, Database,
// and Auth sections on a single Config struct.
package config
