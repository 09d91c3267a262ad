//go:build windows

package ipc

import (
	"net"
	"time"

	"github.com/Microsoft/go-winio"
)

const (
	pipeName    = `\\.\pipe\clipbridge`
	dialTimeout = 2 * time.Second
)

func socketPath() string { return pipeName }

// listenIPC restricts the pipe to the current user and rejects remote clients.
func listenIPC(path string) (net.Listener, error) {
	return winio.ListenPipe(path, &winio.PipeConfig{
		SecurityDescriptor: "D:P(A;;GA;;;OW)",
	})
}

func dialIPC(path string) (net.Conn, error) {
	timeout := dialTimeout
	return winio.DialPipe(path, &timeout)
}
