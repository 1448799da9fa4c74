// Package container defines the contract shared by the compound file and
// zip package readers: a tree of named entries whose stream contents can be
// read, replaced and written back.
package container

import (
	"io"
	"path"
	"strings"

	"github.com/yamitzky/biffkit-go/codec"
)

// Kind tells storages (directories) and streams (files) apart.
type Kind int

const (
	KindStorage Kind = iota
	KindStream
)

func (k Kind) String() string {
	if k == KindStorage {
		return "storage"
	}
	return "stream"
}

// Entry describes one node of a container.
type Entry struct {
	// Path is the slash separated path from the root, without a leading
	// slash. The root itself has an empty path.
	Path string
	// Name is the last element of Path.
	Name string
	Kind Kind
	// Size is the stream length in bytes, 0 for storages.
	Size int64
}

// Container is a parsed compound file or zip package.
type Container interface {
	// Entries lists every entry below the root.
	Entries() []Entry
	// Lookup finds an entry by path. Matching ignores case.
	Lookup(path string) (Entry, bool)
	// Content returns the bytes of a stream.
	Content(path string) ([]byte, error)
	// Replace sets the bytes of an existing stream.
	Replace(path string, data []byte) error
	// WriteTo writes the container with every replacement applied.
	WriteTo(w io.Writer) (int64, error)
}

// Clean normalizes a user supplied entry path: backslashes become slashes,
// leading slashes and dot elements go away.
func Clean(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean("/" + p)
	return strings.TrimPrefix(p, "/")
}

// Key is the case folded form of a cleaned path used for lookups.
func Key(p string) string {
	return strings.ToLower(Clean(p))
}

// Join appends name to a parent path.
func Join(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

// NotFound returns the error for a missing entry.
func NotFound(p string) error {
	return codec.Errorf(codec.ErrMalformedContainer, "no entry %q", p)
}

// NotAStream returns the error for a path naming a storage.
func NotAStream(p string) error {
	return codec.Errorf(codec.ErrMalformedContainer, "%q is not a stream", p)
}
