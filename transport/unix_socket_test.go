package transport

import (
	"net"
	"path/filepath"
	"testing"
	"time"

	httperrors "github.com/genryu22/learn-browser/errors"
)

func setupUnixTestServer(t *testing.T, serverLogic func(net.Conn)) (string, func()) {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "learn-browser.sock")

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("Failed to create Unix test server: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		serverLogic(conn)
		conn.Close()
	}()

	cleanup := func() {
		listener.Close()
		<-done
	}

	return socketPath, cleanup
}

func TestUnixSocket_Connect_IgnoresHost(t *testing.T) {
	path, cleanup := setupUnixTestServer(t, func(conn net.Conn) {})
	defer cleanup()

	socket := NewUnixSocket(path, time.Second)
	if err := socket.Connect("example.com", 80); err != nil {
		t.Errorf("Connect failed: %v", err)
	}
	if socket.conn == nil {
		t.Error("Connection should not be nil after successful connect")
	}

	socket.Close()
}

func TestUnixSocket_Connect_Failure_NoSuchFile(t *testing.T) {
	socket := NewUnixSocket(filepath.Join(t.TempDir(), "missing.sock"), 0)

	requireKind(t, socket.Connect("", 0), httperrors.KindConnectFailed)
}

func TestUnixSocket_ReadWrite(t *testing.T) {
	path, cleanup := setupUnixTestServer(t, func(conn net.Conn) {
		buf := make([]byte, 64)
		n, _ := conn.Read(buf)
		conn.Write(buf[:n])
	})
	defer cleanup()

	socket := NewUnixSocket(path, time.Second)
	if err := socket.Connect("", 0); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer socket.Close()

	if _, err := socket.Write([]byte("ping")); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	buf := make([]byte, 64)
	n, err := socket.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if string(buf[:n]) != "ping" {
		t.Errorf("Expected %q, got %q", "ping", string(buf[:n]))
	}

	_, err = socket.Read(buf)
	requireKind(t, err, httperrors.KindEndOfStream)
}
