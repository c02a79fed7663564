package database

import (
	"fmt"

	"github.com/goccy/go-json"
)

// LoadDocument decodes the document under key into out.
// It reports false when the key is absent; out is then left untouched.
func LoadDocument(store BlobStore, key string, out interface{}) (bool, error) {
	raw, err := store.Get(key)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return true, nil
}

// SaveDocument replaces the document under key with the JSON encoding of doc.
func SaveDocument(store BlobStore, key string, doc interface{}) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := store.Put(key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
