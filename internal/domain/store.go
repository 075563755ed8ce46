package domain

import "strconv"

// Persistent store keys
const (
	KeyLastSeenIndex = "lastSeenVideoIndex"
	likeKeyPrefix    = "like_video_"
)

// KVStore is the string-keyed persistence used for the last seen index and
// per-clip like flags. A missing or unreadable key reports ok=false.
type KVStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// LikeKey returns the store key holding the like flag for a clip
func LikeKey(clipID int) string {
	return likeKeyPrefix + strconv.Itoa(clipID)
}

// FormatBool encodes a flag the way the store expects it ("true"/"false")
func FormatBool(v bool) string {
	return strconv.FormatBool(v)
}
