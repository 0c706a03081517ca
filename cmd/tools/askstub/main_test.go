package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zhouzirui/z-tavern/askwidget/internal/handler"
	"github.com/zhouzirui/z-tavern/askwidget/internal/handler/ask"
	askClient "github.com/zhouzirui/z-tavern/askwidget/internal/service/ask"
)

func TestServeAnswersAndShutsDown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	core, logs := observer.New(zapcore.InfoLevel)
	srv := &http.Server{
		Handler:           handler.NewRouter(ask.EchoAnswerer{Prefix: "echo: "}, nil),
		ReadHeaderTimeout: time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, zap.New(core), srv, ln, time.Second) }()

	answer, err := askClient.NewClient("http://"+ln.Addr().String()).Ask(context.Background(), "ping")
	require.NoError(t, err)
	assert.Equal(t, "echo: ping", answer)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Equal(t, 1, logs.FilterMessage("ask stub shutting down").Len())
}

func TestServeReturnsListenerErrors(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	srv := &http.Server{Handler: http.NotFoundHandler(), ReadHeaderTimeout: time.Second}

	err = serve(context.Background(), zap.NewNop(), srv, ln, time.Second)

	require.Error(t, err)
}
