package model

import "io/fs"

// Path represents a file system path.
type Path string

// SeedFile represents one discovered SQL seed/migration file.
type SeedFile struct {
	// Origin is the path the file was discovered under.
	Origin Path

	// Mode holds the original permission bits so an in-place rewrite can
	// reapply them.
	Mode fs.FileMode
}
