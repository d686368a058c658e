package service

import "github.com/golang-jwt/jwt/v4"

// RelayClaims identify the chat gateway relay (or operator) calling the
// mutating endpoints.
type RelayClaims struct {
	RelayName string `json:"relay_name"`
	jwt.RegisteredClaims
}
