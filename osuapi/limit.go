package osuapi

import (
	"context"
	"fmt"
)

// wait blocks until the client's limiter hands out a token. Clients without a rate limit never wait.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter. %w", err)
	}
	return nil
}
