// Package config centralizes runtime configuration for carboncli.
//
// Configuration comes from three layers, later layers winning:
//
//  1. Struct defaults (envconfig `default` tags)
//  2. An optional YAML file (config.yaml or configs/config.yaml)
//  3. CARBON_* environment variables
//
// The package also owns the country-name alias table and the list of
// World Bank aggregate-region codes. Both ship with built-in defaults
// derived from the reference datasets and can be extended through a YAML
// override file, so merge logic never hardcodes naming fixups.
package config
