package redisrepo

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const ns = "eventdocs:v1"

func KeyEventRecord(eventID string) string {
	return fmt.Sprintf("%s:event:%s:record", ns, eventID)
}

// KeyImage hashes the URL so arbitrary query strings stay out of the key.
func KeyImage(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%s:image:%s", ns, hex.EncodeToString(sum[:]))
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelEventsChanged() string {
	return ns + ":events:changed"
}
