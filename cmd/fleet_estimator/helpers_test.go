package main

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jonathan/fleet-estimator/internal/llm"
)

// executeCommand runs the root command in-process and returns stdout and
// stderr. Flag values are reset first since cobra keeps them between runs.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// stubClient is an llm.Client that answers every structured request with a
// fixed response.
type stubClient struct {
	mu       sync.Mutex
	response string
	err      error
	requests []llm.StructuredRequest
	closed   bool
}

func (c *stubClient) GenerateStructured(_ context.Context, req llm.StructuredRequest, _ llm.ModelTier) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	return c.response, c.err
}

func (c *stubClient) Close() error {
	c.closed = true
	return nil
}

// useStubClient swaps the model constructor for the duration of the test.
func useStubClient(t *testing.T, client *stubClient) {
	t.Helper()
	orig := newModelClient
	newModelClient = func(_ context.Context, _ string) (llm.Client, error) {
		return client, nil
	}
	t.Cleanup(func() { newModelClient = orig })
}
