// Package config provides configuration loading for the index normalizer.
//
// Configuration is layered: built-in defaults, then an optional YAML file
// (config.yaml or configs/config.yaml, or an explicit -config path), then
// IDX_* environment variables. The index list is file-only; logging and
// paths can also come from the environment.
package config
