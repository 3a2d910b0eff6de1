package web

import (
	"bytes"
	"compress/gzip"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
)

type ResponseCache struct {
	Data           []byte // uncompressed JSON, for clients that don't accept gzip
	CompressedData []byte // gzip compressed JSON
	Hash           string // server-side internal fingerprint of the data
	ETag           string // like hash, but intended to match what the client still has
}

// Caches one encoded response per key, rebuilt whenever the fingerprint changes.
type responseCache struct {
	mu      sync.RWMutex
	entries map[string]*ResponseCache
}

func newResponseCache() *responseCache {
	return &responseCache{entries: make(map[string]*ResponseCache)}
}

// Returns the cached response for key if its hash still matches, otherwise encodes a fresh one with build.
// The second return value reports whether the cache was hit.
func (c *responseCache) get(key, hash string, build func() (any, error)) (*ResponseCache, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && entry.Hash == hash {
		return entry, true, nil
	}

	v, err := build()
	if err != nil {
		return nil, false, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, false, err
	}

	compressed, err := gzipBytes(data, 1)
	if err != nil {
		return nil, false, err
	}

	entry = &ResponseCache{
		Data:           data,
		CompressedData: compressed,
		Hash:           hash,
		ETag:           fmt.Sprintf(`"%x"`, sha1.Sum(data)),
	}

	c.mu.Lock()
	c.entries[key] = entry
	c.mu.Unlock()

	return entry, false, nil
}

func gzipBytes(data []byte, level int) ([]byte, error) {
	buf := bytes.Buffer{}
	gz, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func acceptsGzip(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept-Encoding"), "gzip")
}

// Writes the cached JSON, compressed if the client allows it.
func writeCached(w http.ResponseWriter, r *http.Request, entry *ResponseCache, maxAge int) {
	w.Header().Set("ETag", entry.ETag)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Vary", "Accept-Encoding")

	if acceptsGzip(r) {
		w.Header().Set("Content-Encoding", "gzip")
		w.Write(entry.CompressedData)
		return
	}

	w.Write(entry.Data)
}
