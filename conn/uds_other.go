//go:build !linux

package conn

import (
	"net"

	kerr "github.com/yshing/kdb-codec/internal/errors"
)

// dialUnix connects to a Unix domain socket at a filesystem path.
// Abstract-namespace sockets (path beginning with "@") are a
// Linux-only kernel extension and are rejected on other platforms.
func dialUnix(path string) (net.Conn, error) {
	if isAbstract(path) {
		return nil, &kerr.NetworkError{Operation: "dial_uds", Details: "abstract-namespace sockets are only supported on linux"}
	}
	return dialUnixFilesystem(path)
}

func listenUnix(path string, maxConns int) (*Listener, error) {
	if isAbstract(path) {
		return nil, &kerr.NetworkError{Operation: "listen_uds", Details: "abstract-namespace sockets are only supported on linux"}
	}
	return listenUnixFilesystem(path, maxConns)
}
