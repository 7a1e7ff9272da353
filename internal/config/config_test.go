package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ValidateProduction(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid production config", func(c *Config) {}, false},
		{"Default JWT secret rejected", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Short JWT secret rejected", func(c *Config) {
			c.JWTSecret = "short"
		}, true},
		{"Default DB password rejected", func(c *Config) {
			c.DBPassword = "password"
		}, true},
		{"Sqlite driver rejected", func(c *Config) {
			c.DBDriver = "sqlite"
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{
				Env:        "production",
				Port:       "8480",
				DBDriver:   "postgres",
				DBPassword: "a-strong-production-password",
				DBSSLMode:  "require",
				JWTSecret:  "secure-secret-at-least-32-chars-long",
			}
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ValidateDevelopmentDefaults(t *testing.T) {
	c := &Config{
		Env:       "development",
		Port:      "8480",
		DBDriver:  "sqlite",
		JWTSecret: "your-secret-key-change-in-production",
	}
	assert.NoError(t, c.Validate())
}

func TestConfig_ValidateUnknownDriver(t *testing.T) {
	c := &Config{
		Env:       "development",
		Port:      "8480",
		DBDriver:  "mongodb",
		JWTSecret: "x",
	}
	assert.Error(t, c.Validate())
}
