package conn

import (
	"context"
	"net"

	"github.com/yshing/kdb-codec/internal/auth"
	kerr "github.com/yshing/kdb-codec/internal/errors"
	"golang.org/x/net/netutil"
)

// Listener accepts incoming kdb+ IPC connections, performing the server
// handshake on each before handing it back to the caller.
type Listener struct {
	nl    net.Listener
	isTLS bool
}

// Dial connects to addr over TCP — resolving it first (direct parse or
// DNS lookup) and trying each resolved address in turn until one
// connects — then performs the client handshake with cap CapTCPOrTLS.
func Dial(addr, user, password string) (*Conn, error) {
	nc, err := dialResolved(addr)
	if err != nil {
		return nil, err
	}
	if err := clientHandshake(nc, credential{user, password}, auth.CapTCPOrTLS); err != nil {
		_ = nc.Close()
		return nil, err
	}
	return newConn(nc, isLoopback(nc), false), nil
}

func dialResolved(addr string) (net.Conn, error) {
	nc, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "dial", Err: err, Details: addr}
	}
	return nc, nil
}

func isLoopback(nc net.Conn) bool {
	host, _, err := net.SplitHostPort(nc.RemoteAddr().String())
	if err != nil {
		return false
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// Listen starts accepting TCP connections on addr, limiting concurrent
// connections to maxConns (0 disables the limit) via
// netutil.LimitListener, and performing the server handshake on each
// accepted connection before it is usable.
func Listen(addr string, maxConns int) (*Listener, error) {
	nl, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "listen", Err: err, Details: addr}
	}
	if maxConns > 0 {
		nl = netutil.LimitListener(nl, maxConns)
	}
	return &Listener{nl: nl}, nil
}

// Accept blocks until a new connection arrives, performs the server
// handshake on it, and returns the resulting Conn.
func (l *Listener) Accept() (*Conn, error) {
	nc, err := l.nl.Accept()
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "accept", Err: err}
	}
	if err := serverHandshake(nc); err != nil {
		_ = nc.Close()
		return nil, err
	}
	c := newConn(nc, isLoopback(nc), l.isTLS)
	if l.isTLS {
		if err := c.sendTLSCloseControlMessage(context.Background()); err != nil {
			_ = nc.Close()
			return nil, err
		}
	}
	return c, nil
}

// Close stops the listener from accepting further connections.
func (l *Listener) Close() error {
	return l.nl.Close()
}

// Addr returns the listener's bound address.
func (l *Listener) Addr() net.Addr {
	return l.nl.Addr()
}
