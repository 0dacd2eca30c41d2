package chat

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"
)

// timestampMaxAge is how far a request timestamp may drift from the
// local clock before the request is rejected as a possible replay.
const timestampMaxAge = 300 * time.Second

// VerifySignature checks a chat platform webhook signature: HMAC-SHA256
// over "v0:<timestamp>:<body>" with the signing secret, hex-encoded and
// prefixed "v0=". The comparison is constant-time and requests with
// timestamps outside the replay window are rejected.
func VerifySignature(signingSecret, signature, timestamp string, body []byte) bool {
	if signature == "" || timestamp == "" {
		return false
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	age := time.Since(time.Unix(ts, 0))
	if age < 0 {
		age = -age
	}
	if age > timestampMaxAge {
		return false
	}

	mac := hmac.New(sha256.New, []byte(signingSecret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
