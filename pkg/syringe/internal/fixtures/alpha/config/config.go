// Package config holds server settings for the alpha fixture service.
package config

type Config struct {
	Addr string
}
