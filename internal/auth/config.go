package auth

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AuthConfig holds role policies for the API surface. Policies are keyed by
// resource name (e.g. "assignment-groups") and list the roles allowed to
// mutate that resource; reads are open to any authenticated user.
type AuthConfig struct {
	JWTSecret    string              `yaml:"jwt_secret"`
	TTLMinutes   int                 `yaml:"ttl_minutes"`
	RolePolicies map[string][]string `yaml:"role_policies"`
}

// DefaultRolePolicies returns the built-in write policies used when no
// policy file is provided
func DefaultRolePolicies() map[string][]string {
	return map[string][]string{
		"tenants":           {"admin"},
		"users":             {"admin", "manager"},
		"assignment-groups": {"admin", "manager"},
		"campaigns":         {"admin", "manager"},
		"invoices":          {"admin", "manager"},
	}
}

// LoadAuthConfig loads authentication configuration from a YAML file. A
// missing file is not an error; defaults and environment variables apply.
func LoadAuthConfig(configPath string) (*AuthConfig, error) {
	config := &AuthConfig{
		TTLMinutes:   60,
		RolePolicies: DefaultRolePolicies(),
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading auth config file: %w", err)
			}
		} else {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("error unmarshaling auth config: %w", err)
			}
		}
	}

	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.JWTSecret = jwtSecret
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("auth config validation failed: %w", err)
	}

	return config, nil
}

// WritersFor returns the roles allowed to mutate a resource. An absent
// policy means any authenticated user may write.
func (c *AuthConfig) WritersFor(resource string) ([]string, bool) {
	roles, exists := c.RolePolicies[resource]
	return roles, exists
}

// Validate validates the authentication configuration
func (c *AuthConfig) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.TTLMinutes < 1 {
		return fmt.Errorf("ttl_minutes must be at least 1")
	}
	return nil
}
