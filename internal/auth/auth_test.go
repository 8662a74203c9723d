package auth

import (
	"net"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadStore_ParsesUserColonDigestLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kdbaccess")
	content := "alice:" + HashPassword("s3cret") + "\nbob:" + HashPassword("hunter2") + "\n\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	m := loadStore(path)
	if len(m) != 2 {
		t.Fatalf("loadStore() len = %d, want 2", len(m))
	}
	if m["alice"] != HashPassword("s3cret") {
		t.Errorf("alice digest = %q, want %q", m["alice"], HashPassword("s3cret"))
	}
}

func TestLoadStore_MissingFileYieldsEmptyMap(t *testing.T) {
	m := loadStore(filepath.Join(t.TempDir(), "does-not-exist"))
	if len(m) != 0 {
		t.Errorf("loadStore() on missing file len = %d, want 0", len(m))
	}
}

func TestHandshake_SuccessRoundTrip(t *testing.T) {
	storeOnce.Do(func() {})
	store = map[string]string{"alice": HashPassword("s3cret")}

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	errc := make(chan error, 1)
	go func() { errc <- ServerHandshake(server) }()

	if err := ClientHandshake(client, "alice", "s3cret", CapTCPOrTLS); err != nil {
		t.Fatalf("ClientHandshake() error = %v", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("ServerHandshake() error = %v", err)
	}
}

func TestHandshake_WrongPasswordFails(t *testing.T) {
	storeOnce.Do(func() {})
	store = map[string]string{"alice": HashPassword("s3cret")}

	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	errc := make(chan error, 1)
	go func() { errc <- ServerHandshake(server) }()

	done := make(chan struct{})
	go func() {
		ClientHandshake(client, "alice", "wrong", CapTCPOrTLS)
		close(done)
	}()

	err := <-errc
	if err == nil {
		t.Fatal("ServerHandshake() error = nil, want AuthenticationError")
	}
	client.Close()
	<-done
}

func TestHandshake_MalformedCredentialFails(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	errc := make(chan error, 1)
	go func() { errc <- ServerHandshake(server) }()

	go func() {
		client.Write([]byte("noColonHere"))
		client.Write([]byte{CapTCPOrTLS, 0x00})
	}()

	if err := <-errc; err == nil {
		t.Fatal("ServerHandshake() error = nil, want malformed credential error")
	}
}

func TestHashPassword_MatchesKnownDigest(t *testing.T) {
	got := HashPassword("")
	want := "da39a3ee5e6b4b0d3255bfef95601890afd80709"
	if got != want {
		t.Errorf("HashPassword(\"\") = %q, want %q", got, want)
	}
}
