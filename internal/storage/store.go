// Package storage provides the string key-value substrate the workout
// repository persists into. It mirrors browser local storage: whole values are
// read and overwritten by key, there are no partial writes.
package storage

import "fmt"

// Store reads and writes text values by key.
// Get reports ok == false when the key has never been written.
type Store interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Backend is a Store that holds resources which must be released.
type Backend interface {
	Store
	Close() error
}

// Drivers accepted by Open.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Open returns the backend for driver. path is only used by the sqlite driver.
func Open(driver, path string) (Backend, error) {
	switch driver {
	case DriverSQLite:
		return OpenSQLite(path)
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
