package checkers

import (
	"context"
	"time"
)

// Pinger is satisfied by the submission journal repository.
type Pinger interface {
	Ping(ctx context.Context) error
}

// JournalChecker verifies the submission journal is reachable and its
// table is in place.
type JournalChecker struct {
	journal Pinger
	timeout time.Duration
}

func NewJournalChecker(journal Pinger) *JournalChecker {
	return &JournalChecker{journal: journal, timeout: time.Second}
}

func (c *JournalChecker) Name() string { return "journal" }

func (c *JournalChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.journal.Ping(ctx)
}
