// Package conn implements the kdb+ IPC connection layer: TCP/TLS/UDS
// transports, the client/server handshake, and a full-duplex framed
// session built on package ipc.
package conn

import (
	"context"
	"net"
	"sync"

	"github.com/yshing/kdb-codec/internal/auth"
	"github.com/yshing/kdb-codec/internal/bufpool"
	kerr "github.com/yshing/kdb-codec/internal/errors"
	"github.com/yshing/kdb-codec/internal/wire"
	"github.com/yshing/kdb-codec/ipc"
	"github.com/yshing/kdb-codec/kdb"
)

// tlsCloseMessage is the asynchronous control message a TLS acceptor
// session sends immediately after a successful handshake, and again on
// Shutdown, instructing the peer it may close its side of the socket.
const tlsCloseMessage = ".kdbplus.close_tls_connection_:{[] hclose .z.w;}"

// Conn is one established, handshaken kdb+ IPC connection: a
// bidirectional byte stream wrapped by an ipc.Codec.
//
// One goroutine should own Conn's read side (calling Recv) and one
// (possibly the same) should own its write side (calling Send/Feed/
// Flush/SendSync); Conn serializes writes internally so multiple
// goroutines may safely call Send concurrently, but Recv is not safe
// for concurrent callers.
type Conn struct {
	nc       net.Conn
	codec    *ipc.Codec
	encoding byte

	writeMu sync.Mutex
	pending []byte

	readBuf []byte

	// isTLSAcceptor is true for a server-side session accepted over
	// TLS, which must send the close-control message on Shutdown.
	isTLSAcceptor bool
}

func newConn(nc net.Conn, isLocal bool, isTLSAcceptor bool) *Conn {
	return &Conn{
		nc:            nc,
		codec:         ipc.NewCodec(isLocal),
		encoding:      wire.NativeEncoding,
		readBuf:       make([]byte, 0, 64*1024),
		isTLSAcceptor: isTLSAcceptor,
	}
}

// Codec returns the connection's frame codec, for callers that want to
// adjust its compression or validation mode or resource limits.
func (c *Conn) Codec() *ipc.Codec { return c.codec }

// Feed serializes and encodes value, buffering the resulting frame for
// the next Flush rather than writing it immediately. Feed followed by
// Flush is equivalent to Send; splitting them lets a caller batch
// several messages into one write.
func (c *Conn) Feed(messageType byte, value *kdb.K) error {
	frame, err := c.codec.Encode(ipc.Message{MessageType: messageType, Value: value}, c.encoding)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	c.pending = append(c.pending, frame...)
	c.writeMu.Unlock()
	return nil
}

// Flush writes any frames buffered by Feed to the underlying stream.
func (c *Conn) Flush() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if len(c.pending) == 0 {
		return nil
	}
	if _, err := c.nc.Write(c.pending); err != nil {
		return &kerr.NetworkError{Operation: "write", Err: err}
	}
	c.pending = c.pending[:0]
	return nil
}

// Send feeds and flushes value as one message, atomically with respect
// to other Send/Flush calls. If ctx is canceled after Feed but before
// Flush, Send returns ctx.Err() and the message stays buffered: the
// next Send or Flush call will carry it onto the wire, so a canceled
// Send never half-sends a frame.
func (c *Conn) Send(ctx context.Context, messageType byte, value *kdb.K) error {
	if err := c.Feed(messageType, value); err != nil {
		return err
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return c.Flush()
}

// SendAsync sends value as an asynchronous (fire-and-forget) message.
func (c *Conn) SendAsync(ctx context.Context, value *kdb.K) error {
	return c.Send(ctx, ipc.Async, value)
}

// Recv reads frames from the underlying stream until one complete frame
// is available, decodes it, and returns its message type and value. A
// canceled Recv (via ctx) leaves any partially-read bytes buffered for
// the next Recv call.
func (c *Conn) Recv(ctx context.Context) (messageType byte, value *kdb.K, err error) {
	for {
		msg, consumed, decErr := c.codec.Decode(c.readBuf)
		if decErr != nil {
			return 0, nil, decErr
		}
		if msg != nil {
			c.readBuf = append(c.readBuf[:0], c.readBuf[consumed:]...)
			return msg.MessageType, msg.Value, nil
		}

		select {
		case <-ctx.Done():
			return 0, nil, ctx.Err()
		default:
		}

		chunkPtr := bufpool.Get()
		n, readErr := c.nc.Read(*chunkPtr)
		if n > 0 {
			c.readBuf = append(c.readBuf, (*chunkPtr)[:n]...)
		}
		bufpool.Put(chunkPtr)
		if readErr != nil {
			return 0, nil, &kerr.ConnectionClosedError{Err: readErr}
		}
	}
}

// SendSync sends value as a synchronous request and returns the peer's
// response value. It is not cancellation-safe across its internal Recv:
// a caller that cancels ctx mid-call must not assume the connection is
// left in a consistent state for a subsequent call.
func (c *Conn) SendSync(ctx context.Context, value *kdb.K) (*kdb.K, error) {
	if err := c.Send(ctx, ipc.Sync, value); err != nil {
		return nil, err
	}
	messageType, reply, err := c.Recv(ctx)
	if err != nil {
		return nil, err
	}
	if messageType != ipc.Reply {
		return nil, &kerr.NetworkError{Operation: "send_sync", Details: "peer did not reply with a response message"}
	}
	return reply, nil
}

// Shutdown gracefully closes the connection. For a TLS acceptor
// session, it first sends the asynchronous close-control message the
// peer expects, matching the behavior already performed once
// immediately after a successful TLS handshake accept.
func (c *Conn) Shutdown(ctx context.Context) error {
	if c.isTLSAcceptor {
		_ = c.Send(ctx, ipc.Async, kdb.NewString(tlsCloseMessage))
	}
	if err := c.nc.Close(); err != nil {
		return &kerr.NetworkError{Operation: "close", Err: err}
	}
	return nil
}

// sendTLSCloseControlMessage is called once, immediately after a
// successful TLS accept+handshake, independent of Shutdown.
func (c *Conn) sendTLSCloseControlMessage(ctx context.Context) error {
	return c.Send(ctx, ipc.Async, kdb.NewString(tlsCloseMessage))
}

// Sender is the write half of a split Conn.
type Sender struct {
	c *Conn
}

// Send feeds and flushes value, as Conn.Send.
func (s *Sender) Send(ctx context.Context, messageType byte, value *kdb.K) error {
	return s.c.Send(ctx, messageType, value)
}

// Receiver is the read half of a split Conn.
type Receiver struct {
	c *Conn
}

// Recv reads the next frame, as Conn.Recv.
func (r *Receiver) Recv(ctx context.Context) (messageType byte, value *kdb.K, err error) {
	return r.c.Recv(ctx)
}

// Split separates c into independent read and write halves, so an
// application can run its producer and consumer as independent
// goroutines with no shared-state coordination beyond Conn's own
// internal write mutex.
func (c *Conn) Split() (*Sender, *Receiver) {
	return &Sender{c: c}, &Receiver{c: c}
}

// credential bundles the username/password pair a Dial* function
// authenticates with.
type credential struct {
	user     string
	password string
}

func clientHandshake(nc net.Conn, cred credential, cap byte) error {
	return auth.ClientHandshake(nc, cred.user, cred.password, cap)
}

func serverHandshake(nc net.Conn) error {
	return auth.ServerHandshake(nc)
}
