// Package config provides configuration management for the relay gateway.
//
// Configuration is loaded from a YAML file, with sensible defaults applied
// for any omitted field and environment variable overrides applied on top.
// Environment variables follow the naming convention RELAY_SECTION_FIELD
// (e.g., RELAY_SERVER_LISTEN_ADDRESS, RELAY_UPSTREAM_BASE_URL).
//
// The loading sequence is:
//
//  1. Parse YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate the final configuration
//
// A Watcher built on fsnotify can observe the config file and invoke a
// callback with the freshly loaded configuration when it changes, with
// debouncing to avoid reload storms on rapid successive writes.
package config
