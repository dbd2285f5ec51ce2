// Package config loads the bookdesk configuration.
//
// Values are resolved in order: built-in defaults, then the TOML file at
// ~/.config/bookdesk/config.toml (or the -config override), then a .env file
// in the working directory, then BOOKDESK_* environment variables. Later
// sources win. Only two settings exist: the lending server address and the
// debug log file path.
package config
