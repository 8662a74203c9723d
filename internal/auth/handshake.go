package auth

import (
	"crypto/sha1"
	"encoding/hex"
	"io"
	"log"
	"strings"

	kerr "github.com/yshing/kdb-codec/internal/errors"
)

// Capability bytes exchanged during the handshake, advertising the
// protocol level the connection will use.
const (
	CapTCPOrTLS byte = 0x03
	CapUDS      byte = 0x06
)

// ClientHandshake performs the client side of the connection handshake
// over rw: it writes "<user>:<password><cap>\x00" and then reads back
// the single capability byte the server echoes on success.
func ClientHandshake(rw io.ReadWriter, user, password string, cap byte) error {
	req := make([]byte, 0, len(user)+len(password)+3)
	req = append(req, user...)
	req = append(req, ':')
	req = append(req, password...)
	req = append(req, cap, 0x00)

	if DebugAuth {
		log.Printf("auth: sending handshake for user %q, cap 0x%02x", user, cap)
	}

	if _, err := rw.Write(req); err != nil {
		return &kerr.NetworkError{Operation: "handshake write", Err: err}
	}

	reply := make([]byte, 1)
	if _, err := io.ReadFull(rw, reply); err != nil {
		return &kerr.NetworkError{Operation: "handshake read", Err: err}
	}
	if DebugAuth {
		log.Printf("auth: handshake reply cap 0x%02x", reply[0])
	}
	return nil
}

// ServerHandshake performs the server side of the connection handshake
// over rw: it reads bytes up to the first capability byte (0x03 or
// 0x06), splits the preceding text on the first ':' into user and
// password, verifies the password's SHA-1 digest against the
// credential store, and echoes the capability byte back on success.
func ServerHandshake(rw io.ReadWriter) error {
	cred, cap, err := readHandshakeLine(rw)
	if err != nil {
		return err
	}
	// Consume the 0x00 terminator the client appended after cap.
	var trailer [1]byte
	if _, err := io.ReadFull(rw, trailer[:]); err != nil {
		return &kerr.NetworkError{Operation: "handshake read", Err: err}
	}

	user, password, ok := strings.Cut(cred, ":")
	if !ok {
		return &kerr.AuthenticationError{Reason: "malformed credential: missing ':'"}
	}

	want, known := Store()[user]
	if !known || !passwordMatches(password, want) {
		if DebugAuth {
			log.Printf("auth: handshake rejected for user %q", user)
		}
		return &kerr.AuthenticationError{Reason: "unknown user or password mismatch"}
	}

	if DebugAuth {
		log.Printf("auth: handshake accepted for user %q, cap 0x%02x", user, cap)
	}

	if _, err := rw.Write([]byte{cap}); err != nil {
		return &kerr.NetworkError{Operation: "handshake reply write", Err: err}
	}
	return nil
}

// readHandshakeLine reads bytes from rw up to and including the first
// capability byte, returning the preceding "user:password" text and the
// capability byte itself.
func readHandshakeLine(rw io.ReadWriter) (cred string, cap byte, err error) {
	var buf []byte
	var b [1]byte
	for {
		if _, readErr := io.ReadFull(rw, b[:]); readErr != nil {
			return "", 0, &kerr.NetworkError{Operation: "handshake read", Err: readErr}
		}
		if b[0] == CapTCPOrTLS || b[0] == CapUDS {
			return string(buf), b[0], nil
		}
		buf = append(buf, b[0])
		if len(buf) > 4096 {
			return "", 0, &kerr.AuthenticationError{Reason: "handshake line too long"}
		}
	}
}

func passwordMatches(password, wantHex string) bool {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:]) == wantHex
}

// HashPassword returns the lowercase hex SHA-1 digest of password, the
// format stored in the credential file.
func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}
