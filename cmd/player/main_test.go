package main

import (
	"context"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingCloser struct {
	calls *[]string
}

func (c recordingCloser) Close() error {
	*c.calls = append(*c.calls, "log")
	return nil
}

func TestWaitForSignal(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	sigCh <- syscall.SIGINT

	code := -1
	waitForSignal(sigCh, cancel,
		func() { calls = append(calls, "engine") },
		recordingCloser{calls: &calls},
		func(c int) { code = c },
	)

	assert.Error(t, ctx.Err(), "context is cancelled")
	assert.Equal(t, []string{"engine", "log"}, calls, "engine released before the log file closes")
	assert.Equal(t, 130, code)
}
