package conn

import (
	"crypto/tls"
	"crypto/x509"
	"net"
	"os"

	"github.com/yshing/kdb-codec/internal/auth"
	kerr "github.com/yshing/kdb-codec/internal/errors"
	"golang.org/x/crypto/pkcs12"
	"golang.org/x/net/netutil"
)

// DialTLS connects to addr over TLS using tlsConfig, then performs the
// client handshake with cap CapTCPOrTLS.
func DialTLS(addr, user, password string, tlsConfig *tls.Config) (*Conn, error) {
	nc, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "dial_tls", Err: err, Details: addr}
	}
	if err := clientHandshake(nc, credential{user, password}, auth.CapTCPOrTLS); err != nil {
		_ = nc.Close()
		return nil, err
	}
	return newConn(nc, isLoopback(nc), false), nil
}

// ListenTLS starts accepting TLS connections on addr, limited to
// maxConns concurrent connections, performing the server handshake on
// each accepted connection and then immediately sending it the
// TLS close-control message every such session requires.
func ListenTLS(addr string, maxConns int, tlsConfig *tls.Config) (*Listener, error) {
	inner, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "listen_tls", Err: err, Details: addr}
	}
	var nl net.Listener = tls.NewListener(inner, tlsConfig)
	if maxConns > 0 {
		nl = netutil.LimitListener(nl, maxConns)
	}
	return &Listener{nl: nl, isTLS: true}, nil
}

// ServerIdentity holds a certificate and private key suitable for
// tls.Config.Certificates, loaded from a PKCS#12 archive.
type ServerIdentity struct {
	Certificate tls.Certificate
}

// LoadPKCS12Identity reads and decodes a PKCS#12 (.pfx/.p12) identity
// file — the form kdb+ server operators typically distribute TLS server
// identities in — into a tls.Certificate ready to use in a tls.Config.
func LoadPKCS12Identity(path, password string) (*ServerIdentity, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "load_pkcs12", Err: err, Details: path}
	}
	privateKey, cert, err := pkcs12.Decode(data, password)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "decode_pkcs12", Err: err, Details: path}
	}
	return &ServerIdentity{
		Certificate: tls.Certificate{
			Certificate: [][]byte{cert.Raw},
			PrivateKey:  privateKey,
			Leaf:        cert,
		},
	}, nil
}

// ServerTLSConfig builds a *tls.Config from the PKCS#12 identity file
// and password named by the KDBPLUS_TLS_KEY_FILE and
// KDBPLUS_TLS_KEY_FILE_SECRET environment variables, the convention
// kdb+'s own TLS-enabled listeners follow.
func ServerTLSConfig() (*tls.Config, error) {
	path := os.Getenv("KDBPLUS_TLS_KEY_FILE")
	if path == "" {
		return nil, &kerr.NetworkError{Operation: "server_tls_config", Details: "KDBPLUS_TLS_KEY_FILE not set"}
	}
	password := os.Getenv("KDBPLUS_TLS_KEY_FILE_SECRET")
	identity, err := LoadPKCS12Identity(path, password)
	if err != nil {
		return nil, err
	}
	return &tls.Config{Certificates: []tls.Certificate{identity.Certificate}}, nil
}

// ClientTrustPool builds a client trust store from a single PEM-encoded
// CA certificate file, for constructing tlsConfig when dialing a server
// using a self-signed or private CA identity.
func ClientTrustPool(caCertPath string) (*x509.CertPool, error) {
	pem, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, &kerr.NetworkError{Operation: "load_ca_cert", Err: err, Details: caCertPath}
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, &kerr.NetworkError{Operation: "parse_ca_cert", Details: caCertPath}
	}
	return pool, nil
}
