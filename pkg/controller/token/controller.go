// Package token implements the 'anrun token' command.
// This package stores and removes GitHub access tokens using the operating
// system's native credential storage so tokens don't have to be exposed in
// environment variables.
package token

import "io"

type Controller struct {
	param        *Param
	tokenManager TokenManager
}

func New(param *Param, tokenManager TokenManager) *Controller {
	return &Controller{
		param:        param,
		tokenManager: tokenManager,
	}
}

type Param struct {
	// Stdin is where 'token set' reads a token from.
	Stdin io.Reader
}

type TokenManager interface {
	SetToken(token string) error
	RemoveToken() error
}
