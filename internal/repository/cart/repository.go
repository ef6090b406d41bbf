package cart

import "context"

// Storage holds one serialized cart per key, the server-side counterpart of
// a browser's local storage.
type Storage interface {
	// Get returns domain.ErrNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Key builds the storage key for a cart session.
func Key(sessionID string) string {
	return "cart:" + sessionID
}
