// Package auth implements the kdb+ IPC credential store and handshake:
// loading the `user:sha1_hex` account file and performing the client and
// server sides of the initial connection handshake.
package auth

import (
	"bufio"
	"log"
	"os"
	"strings"
	"sync"
)

const defaultAccountFile = "./credential/kdbaccess"

// DebugAuth gates verbose handshake tracing via log.Printf, toggled by
// the KDBPLUS_DEBUG_AUTH environment variable at package init.
var DebugAuth = os.Getenv("KDBPLUS_DEBUG_AUTH") != ""

var (
	storeOnce sync.Once
	store     map[string]string
)

// accountFilePath returns $KDBPLUS_ACCOUNT_FILE, or the default
// ./credential/kdbaccess path if unset.
func accountFilePath() string {
	if p := os.Getenv("KDBPLUS_ACCOUNT_FILE"); p != "" {
		return p
	}
	return defaultAccountFile
}

// Store returns the process-wide credential map (user -> sha1 hex
// digest of their password), loaded lazily on first call and cached for
// the life of the process. A missing account file yields an empty map,
// so every handshake against it fails closed.
func Store() map[string]string {
	storeOnce.Do(func() {
		store = loadStore(accountFilePath())
	})
	return store
}

func loadStore(path string) map[string]string {
	m := make(map[string]string)

	f, err := os.Open(path)
	if err != nil {
		if DebugAuth {
			log.Printf("auth: credential file %q not available: %v", path, err)
		}
		return m
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		user, digest, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		m[user] = digest
	}
	if DebugAuth {
		log.Printf("auth: loaded %d credential(s) from %q", len(m), path)
	}
	return m
}
