package platform

import (
	"os"
)

// Kind classifies what occupies a path, without following a final symlink.
type Kind int

const (
	KindMissing Kind = iota
	KindSymlink
	KindDir
	KindFile
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindSymlink:
		return "symlink"
	case KindDir:
		return "dir"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Entry describes the occupant of a path.
type Entry struct {
	Path string
	Kind Kind
	// Target is the recorded link target (symlinks only).
	Target string
	// Dangling is true for a symlink whose target cannot be resolved.
	Dangling bool
}

// IsLink reports whether the path holds a symlink.
func (e Entry) IsLink() bool { return e.Kind == KindSymlink }

// IsReal reports whether the path holds a real file or directory.
func (e Entry) IsReal() bool { return e.Kind == KindDir || e.Kind == KindFile }

// Probe inspects path with Lstat. Errors other than "not exist" are treated
// as an occupied regular file so callers never overwrite what they cannot see.
func Probe(path string) Entry {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{Path: path, Kind: KindMissing}
		}
		return Entry{Path: path, Kind: KindFile}
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		entry := Entry{Path: path, Kind: KindSymlink}
		entry.Target, _ = ReadSymlinkTarget(path)
		if _, err := os.Stat(path); err != nil {
			entry.Dangling = true
		}
		return entry
	case info.IsDir():
		return Entry{Path: path, Kind: KindDir}
	default:
		return Entry{Path: path, Kind: KindFile}
	}
}

// Exists reports whether path resolves to an existing file or directory,
// following symlinks.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path resolves to a directory, following symlinks.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
