package i

import (
	dmn "github.com/beka-birhanu/labyrinth-api/domain"
)

// Authenticator registers players and exchanges credentials for tokens.
type Authenticator interface {
	Register(username, password string) error
	SignIn(username, password string) (*dmn.Player, string, error)
}
