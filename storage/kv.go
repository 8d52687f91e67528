// storage/kv.go
package storage

// KV is the persistence capability injected into the ledger components.
// It keeps the same contract the legacy front-end had with localStorage:
// string keys, string values, and absent keys read back as "" rather than
// an error. Errors are reserved for the store itself being unavailable.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// PrefixLister is implemented by stores that can enumerate keys. The core
// ledger only ever needs KV; the leaderboard rebuild job uses this to walk
// the per-address burn counters.
type PrefixLister interface {
	ListPrefix(prefix string) (map[string]string, error)
}
