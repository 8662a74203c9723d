//go:build linux

package conn

import (
	"net"
	"os"

	kerr "github.com/yshing/kdb-codec/internal/errors"
	"golang.org/x/net/netutil"
	"golang.org/x/sys/unix"
)

// dialUnix connects to a Unix domain socket, using Linux's
// abstract-namespace extension (a name with no backing filesystem
// entry) when path begins with "@", and a regular filesystem socket
// otherwise.
func dialUnix(path string) (net.Conn, error) {
	if !isAbstract(path) {
		return dialUnixFilesystem(path)
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "dial_uds_abstract", Err: err, Details: path}
	}
	sa := &unix.SockaddrUnix{Name: "\x00" + path[1:]}
	if err := unix.Connect(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, &kerr.NetworkError{Operation: "dial_uds_abstract", Err: err, Details: path}
	}
	return fileConn(fd, path)
}

// listenUnix accepts the same abstract-namespace convention as
// dialUnix.
func listenUnix(path string, maxConns int) (*Listener, error) {
	if !isAbstract(path) {
		return listenUnixFilesystem(path, maxConns)
	}

	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "listen_uds_abstract", Err: err, Details: path}
	}
	sa := &unix.SockaddrUnix{Name: "\x00" + path[1:]}
	if err := unix.Bind(fd, sa); err != nil {
		_ = unix.Close(fd)
		return nil, &kerr.NetworkError{Operation: "listen_uds_abstract", Err: err, Details: path}
	}
	const backlog = 128
	if err := unix.Listen(fd, backlog); err != nil {
		_ = unix.Close(fd)
		return nil, &kerr.NetworkError{Operation: "listen_uds_abstract", Err: err, Details: path}
	}

	f := os.NewFile(uintptr(fd), path)
	defer f.Close()
	nl, err := net.FileListener(f)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "listen_uds_abstract", Err: err, Details: path}
	}
	if maxConns > 0 {
		nl = netutil.LimitListener(nl, maxConns)
	}
	return &Listener{nl: nl}, nil
}

func fileConn(fd int, name string) (net.Conn, error) {
	f := os.NewFile(uintptr(fd), name)
	defer f.Close()
	nc, err := net.FileConn(f)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "dial_uds_abstract", Err: err, Details: name}
	}
	return nc, nil
}
