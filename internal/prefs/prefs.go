// Package prefs provides a small namespaced key-value store for client-side
// preferences such as My List and watch history.
package prefs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"streamflixtv/config"
)

var (
	ErrNamespaceRequired = errors.New("preferences namespace is required")
	ErrKeyRequired       = errors.New("preference key is required")
	ErrClosed            = errors.New("preferences store closed")
)

// Store is a string key-value store scoped to one namespace.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool, error)
	Put(key, value string) error
	Remove(key string) error
	Close() error
}

// Open returns the backend selected by the storage settings.
func Open(settings config.StorageSettings, namespace string) (Store, error) {
	switch settings.Backend {
	case config.StorageBackendSQLite:
		return OpenSQLite(settings.SQLitePath, namespace)
	case config.StorageBackendFile, "":
		return NewFileStore(afero.NewOsFs(), settings.Directory, namespace)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", settings.Backend)
	}
}

func validNamespace(namespace string) (string, error) {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return "", ErrNamespaceRequired
	}
	if strings.ContainsAny(namespace, `/\`) || namespace != filepath.Base(namespace) {
		return "", fmt.Errorf("invalid preferences namespace %q", namespace)
	}
	return namespace, nil
}

func validKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrKeyRequired
	}
	return key, nil
}
