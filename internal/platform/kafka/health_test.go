package kafka

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthChecker(t *testing.T) {
	t.Run("reachable broker", func(t *testing.T) {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()
		go func() {
			if conn, err := ln.Accept(); err == nil {
				_ = conn.Close()
			}
		}()

		assert.NoError(t, NewHealthChecker("127.0.0.1:1, "+ln.Addr().String()).Check(context.Background()))
	})

	t.Run("no brokers configured", func(t *testing.T) {
		assert.ErrorContains(t, NewHealthChecker(" , ").Check(context.Background()), "not configured")
	})
}
