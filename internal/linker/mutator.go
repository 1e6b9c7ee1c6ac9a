package linker

import (
	"os"

	"github.com/agentlink/agentlink/internal/platform"
	"github.com/rs/zerolog"
)

// mutator is every filesystem write the engine performs. Detection always
// reads the real filesystem; only writes go through here, which is what
// makes a dry run an exact preview.
type mutator interface {
	Rename(oldpath, newpath string) error
	Symlink(target, link string) error
	Remove(path string) error
	RemoveAll(path string) error
	MkdirAll(path string) error
}

type osMutator struct{}

func (osMutator) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }
func (osMutator) Symlink(target, link string) error    { return platform.CreateSymlink(target, link) }
func (osMutator) Remove(path string) error             { return platform.RemoveSymlink(path) }
func (osMutator) RemoveAll(path string) error          { return os.RemoveAll(path) }
func (osMutator) MkdirAll(path string) error           { return os.MkdirAll(path, 0755) }

// dryRunMutator logs what would happen and reports success.
type dryRunMutator struct {
	log zerolog.Logger
}

func (m dryRunMutator) Rename(oldpath, newpath string) error {
	m.log.Debug().Str("from", oldpath).Str("to", newpath).Msg("dry-run: would move")
	return nil
}

func (m dryRunMutator) Symlink(target, link string) error {
	m.log.Debug().Str("link", link).Str("target", target).Msg("dry-run: would link")
	return nil
}

func (m dryRunMutator) Remove(path string) error {
	m.log.Debug().Str("path", path).Msg("dry-run: would remove link")
	return nil
}

func (m dryRunMutator) RemoveAll(path string) error {
	m.log.Debug().Str("path", path).Msg("dry-run: would remove")
	return nil
}

func (m dryRunMutator) MkdirAll(path string) error {
	return nil
}
