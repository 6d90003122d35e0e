package server

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/kvredis/internal/logging"
)

// newPipeServer wires a Server to one end of an in-memory net.Pipe
// connection, running handleConnection in the background, and returns the
// other end for the test to drive.
func newPipeServer(t *testing.T) (client net.Conn, done chan struct{}) {
	t.Helper()
	client, serverSide := net.Pipe()
	s := New("unused:0", logging.New())
	s.startedAt = time.Now()

	done = make(chan struct{})
	go func() {
		s.handleConnection(serverSide)
		close(done)
	}()
	t.Cleanup(func() { client.Close() })
	return client, done
}

func readReply(t *testing.T, r *bufio.Reader) string {
	t.Helper()
	// Read a single CRLF-terminated line: a whole +/-/: reply, or only the
	// header line of a bulk/array reply (callers read any body lines
	// themselves). Tests only assert on exact known wire forms, so one
	// ReadString('\n') per line is sufficient here.
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	return line
}

// PING round trip over the wire.
func TestEndToEnd_Ping(t *testing.T) {
	client, _ := newPipeServer(t)
	_, err := client.Write([]byte("*1\r\n$4\r\nPING\r\n"))
	require.NoError(t, err)

	r := bufio.NewReader(client)
	assert.Equal(t, "+PONG\r\n", readReply(t, r))
}

// SET then GET.
func TestEndToEnd_SetGet(t *testing.T) {
	client, _ := newPipeServer(t)
	r := bufio.NewReader(client)

	_, err := client.Write([]byte("*3\r\n$3\r\nSET\r\n$3\r\nkey\r\n$5\r\nhello\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "+OK\r\n", readReply(t, r))

	_, err = client.Write([]byte("*2\r\n$3\r\nGET\r\n$3\r\nkey\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "$5\r\n", readReply(t, r))
	body, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "hello\r\n", body)
}

// GET on an absent key.
func TestEndToEnd_GetAbsent(t *testing.T) {
	client, _ := newPipeServer(t)
	r := bufio.NewReader(client)

	_, err := client.Write([]byte("*2\r\n$3\r\nGET\r\n$4\r\nnone\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "$-1\r\n", readReply(t, r))
}

// EXPIRE on an absent key.
func TestEndToEnd_ExpireAbsentKey(t *testing.T) {
	client, _ := newPipeServer(t)
	r := bufio.NewReader(client)

	_, err := client.Write([]byte("*3\r\n$6\r\nEXPIRE\r\n$3\r\nfoo\r\n$2\r\n10\r\n"))
	require.NoError(t, err)
	assert.Equal(t, ":0\r\n", readReply(t, r))
}

// Clean close: a peer closing the connection ends the connection loop.
func TestEndToEnd_CleanClose(t *testing.T) {
	client, done := newPipeServer(t)
	client.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handleConnection did not exit after peer close")
	}
}

// An unknown type prefix is a framing error: the connection is closed
// without a reply frame.
func TestEndToEnd_ProtocolErrorClosesConnection(t *testing.T) {
	client, done := newPipeServer(t)
	_, err := client.Write([]byte("?garbage\r\n"))
	require.NoError(t, err)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handleConnection did not close on protocol error")
	}
}
