// Package platform provides the filesystem primitives the linker builds on:
// native symlink creation, removal and target reading, plus Probe, which
// classifies a path (missing, symlink, directory, file) without following a
// final symlink. Windows needs developer mode for symlinks; IsSymlinkSupported
// checks for it up front.
package platform
