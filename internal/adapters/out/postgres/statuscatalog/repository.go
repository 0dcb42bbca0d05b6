// Package statuscatalog resolves status catalog keys to their storage-level
// numeric ids and back. The catalog table is reference data seeded by
// migrations; rows are never mutated at runtime, so lookups are cached
// in-process after first use.
package statuscatalog

import (
	"context"
	"errors"
	"sync"

	"gorm.io/gorm"

	"fieldservice/internal/pkg/errs"
)

// CatalogEntryDTO represents one row of the status catalog table.
type CatalogEntryDTO struct {
	ID  int    `gorm:"primaryKey"`
	Key string `gorm:"uniqueIndex"`
}

// TableName specifies the database table name for catalog entries.
func (CatalogEntryDTO) TableName() string {
	return "status_catalog"
}

// GormTypeCatalog implements TypeCatalog backed by the status_catalog table.
type GormTypeCatalog struct {
	db *gorm.DB

	mu     sync.RWMutex
	byKey  map[string]int
	byID   map[int]string
	loaded bool
}

// NewGormTypeCatalog creates a catalog bound to the given database.
func NewGormTypeCatalog(db *gorm.DB) *GormTypeCatalog {
	return &GormTypeCatalog{
		db:    db,
		byKey: make(map[string]int),
		byID:  make(map[int]string),
	}
}

// IDOf resolves a status key to its storage id. Unknown keys fail
// ObjectNotFound.
func (c *GormTypeCatalog) IDOf(ctx context.Context, key string) (int, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return 0, err
	}

	c.mu.RLock()
	id, ok := c.byKey[key]
	c.mu.RUnlock()

	if !ok {
		return 0, errs.NewObjectNotFoundError("statusKey", key)
	}
	return id, nil
}

// KeyOf resolves a storage id back to its status key. Unknown ids fail
// ObjectNotFound.
func (c *GormTypeCatalog) KeyOf(ctx context.Context, id int) (string, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return "", err
	}

	c.mu.RLock()
	key, ok := c.byID[id]
	c.mu.RUnlock()

	if !ok {
		return "", errs.NewObjectNotFoundError("statusID", id)
	}
	return key, nil
}

func (c *GormTypeCatalog) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	isLoaded := c.loaded
	c.mu.RUnlock()
	if isLoaded {
		return nil
	}

	var entries []CatalogEntryDTO
	if err := c.db.WithContext(ctx).Find(&entries).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("status catalog table is empty; run migrations")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, entry := range entries {
		c.byKey[entry.Key] = entry.ID
		c.byID[entry.ID] = entry.Key
	}
	c.loaded = true
	return nil
}
