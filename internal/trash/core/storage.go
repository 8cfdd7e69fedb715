package core

import "context"

// Storage defines the interface for a remote trash bin
type Storage interface {
	// List returns a snapshot of every item currently in the trash
	List(ctx context.Context) ([]Item, error)

	// Restore moves the given item out of the trash
	Restore(ctx context.Context, item Item) error

	// Info returns detailed information about the storage
	Info() *StorageInfo
}

// StorageInfo provides information about a trash storage
type StorageInfo struct {
	// Root is the URL of the trash collection
	Root string

	// User owns the trash bin
	User string

	// Concurrency is the number of requests the storage is sized for
	Concurrency int
}
