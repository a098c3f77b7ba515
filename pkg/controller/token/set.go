package token

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Set reads a token from stdin and stores it in the secret store.
func (c *Controller) Set() error {
	b, err := io.ReadAll(c.param.Stdin)
	if err != nil {
		return fmt.Errorf("read a GitHub access token from stdin: %w", err)
	}
	token := strings.TrimSpace(string(b))
	if token == "" {
		return errors.New("a GitHub access token is required via stdin")
	}
	if err := c.tokenManager.SetToken(token); err != nil {
		return fmt.Errorf("set a GitHub access token in the secret store: %w", err)
	}
	return nil
}
