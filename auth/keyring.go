// Package auth provides a high-level API for persisting and retrieving provider credentials from the system keyring.
package auth

import (
	"github.com/gense-cli/gense/constant"
	"github.com/zalando/go-keyring"
)

// SetToken persists a provider's bearer token to the system keyring.
func SetToken(provider, token string) error {
	return keyring.Set(constant.Gense, provider, token)
}

// GetToken retrieves a provider's bearer token from the system keyring.
func GetToken(provider string) (string, error) {
	return keyring.Get(constant.Gense, provider)
}

// DeleteToken removes a provider's bearer token from the system keyring.
func DeleteToken(provider string) error {
	return keyring.Delete(constant.Gense, provider)
}
