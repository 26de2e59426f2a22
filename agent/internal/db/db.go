package db

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var gdb *gorm.DB

// Open initializes the agent's local SQLite store and migrates its tables.
func Open(path string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	d, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := d.AutoMigrate(&Token{}, &CachedDocument{}); err != nil {
		return nil, err
	}
	gdb = d
	return d, nil
}

func Get() *gorm.DB { return gdb }
