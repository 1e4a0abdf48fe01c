// Package store holds the storage interface used by triviascot to remember things across restarts
// (i.e. the channels it already greeted) along with its leveldb implementation
package store

import (
	"io"
)

// StringStorer is implemented by any value that has the Get/Put/Delete/Scan and Closer methods on string keys/values
type StringStorer interface {
	io.Closer

	GetString(key string) (value string, err error)
	PutString(key string, value string) (err error)
	DeleteString(key string) (err error)
	Scan() (entries map[string]string, err error)
}
