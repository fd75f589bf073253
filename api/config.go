package api

import (
	"fmt"
	"strconv"
	"strings"

	internalstrings "github.com/amonks/contestsim/internal/strings"
)

// DefaultPort is used when only a host or nothing is configured.
const DefaultPort = 8089

// ResolveAddr returns the listen address for addr, falling back to
// fallback when addr is blank. A bare port binds to localhost.
func ResolveAddr(addr, fallback string) (string, error) {
	if internalstrings.IsBlank(addr) {
		addr = fallback
	}
	if internalstrings.IsBlank(addr) {
		return fmt.Sprintf("127.0.0.1:%d", DefaultPort), nil
	}
	return normalizeAddr(addr)
}

func normalizeAddr(addr string) (string, error) {
	trimmed := strings.TrimSpace(addr)
	if strings.Contains(trimmed, ":") {
		return trimmed, nil
	}
	port, err := strconv.Atoi(trimmed)
	if err != nil {
		return "", fmt.Errorf("invalid port %q", trimmed)
	}
	if port <= 0 || port > 65535 {
		return "", fmt.Errorf("port out of range: %d", port)
	}
	return fmt.Sprintf("127.0.0.1:%d", port), nil
}
