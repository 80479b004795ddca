package sigv4

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// defaultCacheSize bounds the number of derived signing keys a Signer
// retains at once. A key is (secret, date, region, service); in practice
// a process signs for a small, stable set of (region, service) pairs, so
// this comfortably covers normal use while bounding worst-case memory if a
// caller rotates credentials frequently.
const defaultCacheSize = 300

type signingKeyCacheEntry struct {
	key  string
	hmac []byte
}

// signingKeyCache holds derived SigV4 signing keys keyed by
// secret/date/region/service. Once max entries are held, put evicts the
// least recently used one. Nothing is evicted by date: an entry for a
// past UTC date is simply never looked up again and ages out through the
// same least-recently-used order.
type signingKeyCache struct {
	mu      sync.RWMutex
	entries map[string]signingKeyCacheEntry
	order   []string
	max     int
}

func newSigningKeyCache(max int) *signingKeyCache {
	return &signingKeyCache{
		entries: make(map[string]signingKeyCacheEntry),
		max:     max,
	}
}

func (c *signingKeyCache) get(cacheKey string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[cacheKey]
	if ok {
		c.touch(cacheKey)
	}
	return e.hmac, ok
}

func (c *signingKeyCache) put(cacheKey string, key []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[cacheKey]; exists {
		c.entries[cacheKey] = signingKeyCacheEntry{key: cacheKey, hmac: key}
		c.touch(cacheKey)
		return
	}

	if len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[cacheKey] = signingKeyCacheEntry{key: cacheKey, hmac: key}
	c.order = append(c.order, cacheKey)
}

// touch moves cacheKey to the back of order, marking it most-recently-used.
// Callers must hold c.mu.
func (c *signingKeyCache) touch(cacheKey string) {
	for i, k := range c.order {
		if k == cacheKey {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, cacheKey)
			return
		}
	}
}

// signingKeyFinalizer derives a SigV4 signing key through the
// kDate -> kRegion -> kService -> kSigning HMAC-SHA256 chain, consulting
// cache before recomputing it.
type signingKeyFinalizer struct {
	cache   *signingKeyCache
	date    string
	region  string
	service string
	secret  string
}

func (f *signingKeyFinalizer) SignString(stringToSign string) (string, error) {
	key := f.signingKey()
	return hex.EncodeToString(hmacSHA256(key, stringToSign)), nil
}

func (f *signingKeyFinalizer) signingKey() []byte {
	cacheKey := f.secret + "/" + f.date + "/" + f.region + "/" + f.service

	if key, ok := f.cache.get(cacheKey); ok {
		return key
	}

	kDate := hmacSHA256([]byte("AWS4"+f.secret), f.date)
	kRegion := hmacSHA256(kDate, f.region)
	kService := hmacSHA256(kRegion, f.service)
	kSigning := hmacSHA256(kService, "aws4_request")

	f.cache.put(cacheKey, kSigning)
	return kSigning
}

func hmacSHA256(key []byte, data string) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(data))
	return h.Sum(nil)
}
