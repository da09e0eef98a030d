package checkers

import (
	"context"
	"net/http"
	"time"

	"github.com/artem13815/oneresume/pkg/remote"
)

// RemoteChecker probes the OneResume API root.
type RemoteChecker struct {
	client  *remote.Client
	timeout time.Duration
}

func NewRemoteChecker(client *remote.Client) *RemoteChecker {
	return &RemoteChecker{client: client, timeout: 2 * time.Second}
}

func (c *RemoteChecker) Name() string { return "remote" }

func (c *RemoteChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return remote.Exec(ctx, c.client, http.MethodGet, "/", nil)
}
