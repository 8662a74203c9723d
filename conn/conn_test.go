package conn

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/yshing/kdb-codec/internal/auth"
	"github.com/yshing/kdb-codec/ipc"
	"github.com/yshing/kdb-codec/kdb"
)

func writeCredentialFile(t *testing.T, path, user, password string) {
	t.Helper()
	content := user + ":" + auth.HashPassword(password) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
}

func pipeConns() (*Conn, *Conn) {
	a, b := net.Pipe()
	return newConn(a, true, false), newConn(b, true, false)
}

func TestConn_SendRecvRoundTrip(t *testing.T) {
	client, server := pipeConns()
	defer client.Shutdown(context.Background())
	defer server.Shutdown(context.Background())

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		done <- client.Send(ctx, ipc.Async, kdb.NewLong(42))
	}()

	_, value, err := server.Recv(ctx)
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	got, err := value.Long()
	if err != nil || got != 42 {
		t.Errorf("value = %v, %v, want 42", got, err)
	}
}

func TestConn_FeedFlushSendsOnlyOnFlush(t *testing.T) {
	client, server := pipeConns()
	defer client.Shutdown(context.Background())
	defer server.Shutdown(context.Background())

	if err := client.Feed(ipc.Async, kdb.NewLong(7)); err != nil {
		t.Fatalf("Feed() error = %v", err)
	}

	flushed := make(chan error, 1)
	go func() { flushed <- client.Flush() }()

	ctx := context.Background()
	_, value, err := server.Recv(ctx)
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if err := <-flushed; err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	got, _ := value.Long()
	if got != 7 {
		t.Errorf("value = %v, want 7", got)
	}
}

func TestConn_SendSync_RepliesWithReplyMessage(t *testing.T) {
	client, server := pipeConns()
	defer client.Shutdown(context.Background())
	defer server.Shutdown(context.Background())

	ctx := context.Background()
	go func() {
		_, req, err := server.Recv(ctx)
		if err != nil {
			return
		}
		n, _ := req.Long()
		server.Send(ctx, ipc.Reply, kdb.NewLong(n*2))
	}()

	reply, err := client.SendSync(ctx, kdb.NewLong(21))
	if err != nil {
		t.Fatalf("SendSync() error = %v", err)
	}
	got, _ := reply.Long()
	if got != 42 {
		t.Errorf("reply = %v, want 42", got)
	}
}

func TestConn_SendSync_WrongMessageTypeErrors(t *testing.T) {
	client, server := pipeConns()
	defer client.Shutdown(context.Background())
	defer server.Shutdown(context.Background())

	ctx := context.Background()
	go func() {
		server.Recv(ctx)
		server.Send(ctx, ipc.Async, kdb.NewLong(1))
	}()

	if _, err := client.SendSync(ctx, kdb.NewLong(1)); err == nil {
		t.Fatal("SendSync() error = nil, want error for non-Reply response")
	}
}

func TestConn_Recv_CanceledContextLeavesBufferIntact(t *testing.T) {
	client, server := pipeConns()
	defer client.Shutdown(context.Background())
	defer server.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No bytes have arrived yet, so Recv must observe the cancellation
	// before blocking on a read.
	if _, _, err := server.Recv(ctx); err == nil {
		t.Fatal("Recv() error = nil, want context.Canceled")
	}

	done := make(chan error, 1)
	go func() { done <- client.Send(context.Background(), ipc.Async, kdb.NewLong(9)) }()

	_, value, err := server.Recv(context.Background())
	if err != nil {
		t.Fatalf("Recv() after cancellation error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	got, _ := value.Long()
	if got != 9 {
		t.Errorf("value = %v, want 9", got)
	}
}

func TestConn_Split_SenderReceiverIndependentUsage(t *testing.T) {
	client, server := pipeConns()
	defer client.Shutdown(context.Background())
	defer server.Shutdown(context.Background())

	sender, _ := client.Split()
	_, receiver := server, &Receiver{c: server}

	done := make(chan error, 1)
	go func() { done <- sender.Send(context.Background(), ipc.Async, kdb.NewLong(3)) }()

	_, value, err := receiver.Recv(context.Background())
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if err := <-done; err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	got, _ := value.Long()
	if got != 3 {
		t.Errorf("value = %v, want 3", got)
	}
}

func TestDialListen_TCPRoundTripWithHandshake(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KDBPLUS_ACCOUNT_FILE", dir+"/kdbaccess")
	writeCredentialFile(t, dir+"/kdbaccess", "alice", "s3cret")

	ln, err := Listen("127.0.0.1:0", 0)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	accepted := make(chan *Conn, 1)
	acceptErr := make(chan error, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			acceptErr <- err
			return
		}
		accepted <- c
	}()

	client, err := Dial(ln.Addr().String(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	defer client.Shutdown(context.Background())

	var server *Conn
	select {
	case server = <-accepted:
	case err := <-acceptErr:
		t.Fatalf("Accept() error = %v", err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Accept()")
	}
	defer server.Shutdown(context.Background())

	ctx := context.Background()
	if err := client.SendAsync(ctx, kdb.NewString("hello")); err != nil {
		t.Fatalf("SendAsync() error = %v", err)
	}
	_, value, err := server.Recv(ctx)
	if err != nil {
		t.Fatalf("Recv() error = %v", err)
	}
	if s, _ := value.AsString(); s != "hello" {
		t.Errorf("value = %q, want %q", s, "hello")
	}
}

func TestDial_BadCredentialsFails(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("KDBPLUS_ACCOUNT_FILE", dir+"/kdbaccess")
	writeCredentialFile(t, dir+"/kdbaccess", "alice", "s3cret")

	ln, err := Listen("127.0.0.1:0", 0)
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	go ln.Accept()

	if _, err := Dial(ln.Addr().String(), "alice", "wrong"); err == nil {
		t.Fatal("Dial() error = nil, want authentication failure")
	}
}
