package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	headerSignature = "X-Signature"
	headerTimestamp = "X-Timestamp"
	headerRequestID = "X-Request-ID"
)

// Sign returns the hex HMAC-SHA256 of timestamp+path+METHOD keyed by secret.
// path is normalised with SigningPath first.
func Sign(secret, timestamp, path, method string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(timestamp + SigningPath(path) + strings.ToUpper(method)))
	return hex.EncodeToString(mac.Sum(nil))
}

// SigningPath prefixes path with /api unless it already starts with it.
func SigningPath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if strings.HasPrefix(path, "/api") {
		return path
	}
	return "/api" + path
}
