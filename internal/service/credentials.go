package service

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Credentials is a decoded username/password pair. It is also what the
// registration operations return to the caller: the system-issued
// username and one-time-visible password.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

const basicPrefix = "Basic "

// ExtractCredentials decodes a credential token of the form
// "Basic " + base64(username ":" password). The payload splits on the
// first colon only, so passwords may contain colons.
//
// Extraction performs no authentication; verification is a separate
// stage. The function is independent of any transport header name so it
// can be fed from an HTTP header, CLI flag, or RPC metadata alike.
func ExtractCredentials(raw string) (Credentials, error) {
	if !strings.HasPrefix(raw, basicPrefix) {
		return Credentials{}, fmt.Errorf("%w: missing credential token", ErrUnauthorized)
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(raw, basicPrefix))
	if err != nil {
		return Credentials{}, fmt.Errorf("%w: malformed credential token", ErrUnauthorized)
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return Credentials{}, fmt.Errorf("%w: invalid credential format", ErrUnauthorized)
	}

	return Credentials{Username: parts[0], Password: parts[1]}, nil
}
