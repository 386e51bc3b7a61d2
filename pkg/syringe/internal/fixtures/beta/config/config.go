// Package config holds worker settings for the beta fixture service.
package config

type Config struct {
	Workers int
}
