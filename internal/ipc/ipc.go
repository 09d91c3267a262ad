// Package ipc provides the local channel the clipbridge CLI uses to reach a
// running daemon: a Unix domain socket on Linux and macOS, a named pipe on
// Windows. Messages on it are framed by package wire.
package ipc

import (
	"fmt"
	"net"
	"os"
)

// EnvSocket overrides the socket path.
const EnvSocket = "CLIPBRIDGE_SOCKET"

// SocketPath returns the platform-appropriate path for the control socket.
//
//   - Linux / macOS: $XDG_RUNTIME_DIR/clipbridge.sock, else $TMPDIR/clipbridge.sock
//   - Windows:       \\.\pipe\clipbridge
//
// $CLIPBRIDGE_SOCKET takes precedence on every platform.
func SocketPath() string {
	if s := os.Getenv(EnvSocket); s != "" {
		return s
	}
	return socketPath()
}

// Listen creates a listener on path.
func Listen(path string) (net.Listener, error) {
	ln, err := listenIPC(path)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", path, err)
	}
	return ln, nil
}

// Dial connects to the daemon listening on path.
func Dial(path string) (net.Conn, error) {
	c, err := dialIPC(path)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", path, err)
	}
	return c, nil
}

// IsRunning reports whether a daemon appears to be listening on path. It
// does a cheap dial-and-close; no data is exchanged.
func IsRunning(path string) bool {
	c, err := dialIPC(path)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}
