package conn

import (
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/yshing/kdb-codec/internal/auth"
	kerr "github.com/yshing/kdb-codec/internal/errors"
	"golang.org/x/net/netutil"
)

// UDSBaseDir returns $QUDSPATH, or "/tmp" if unset — the base directory
// kdb+'s own UDS transport derives its abstract socket name from.
func UDSBaseDir() string {
	if dir := os.Getenv("QUDSPATH"); dir != "" {
		return dir
	}
	return "/tmp"
}

// AbstractSocketName builds the Linux abstract-namespace socket name
// kdb+'s own UDS transport derives from a configurable base directory
// and the target port, suitable for passing to DialUDS/ListenUDS.
func AbstractSocketName(baseDir string, port int) string {
	return "@" + baseDir + "/" + strconv.Itoa(port)
}

// DialUDS connects to a Unix domain socket at path and performs the
// client handshake with cap CapUDS. A path beginning with "@" names a
// Linux abstract-namespace socket (the "@" is stripped and the kernel
// null-byte convention applied) rather than a filesystem path.
func DialUDS(path, user, password string) (*Conn, error) {
	nc, err := dialUnix(path)
	if err != nil {
		return nil, err
	}
	if err := clientHandshake(nc, credential{user, password}, auth.CapUDS); err != nil {
		_ = nc.Close()
		return nil, err
	}
	return newConn(nc, true, false), nil
}

// ListenUDS starts accepting Unix domain socket connections at path,
// limited to maxConns concurrent connections.
func ListenUDS(path string, maxConns int) (*Listener, error) {
	return listenUnix(path, maxConns)
}

func dialUnixFilesystem(path string) (net.Conn, error) {
	nc, err := net.Dial("unix", path)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "dial_uds", Err: err, Details: path}
	}
	return nc, nil
}

func listenUnixFilesystem(path string, maxConns int) (*Listener, error) {
	var nl net.Listener
	nl, err := net.Listen("unix", path)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "listen_uds", Err: err, Details: path}
	}
	if maxConns > 0 {
		nl = netutil.LimitListener(nl, maxConns)
	}
	return &Listener{nl: nl}, nil
}

func isAbstract(path string) bool {
	return strings.HasPrefix(path, "@")
}
