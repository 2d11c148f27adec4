// Package publish delivers generated documents to their destinations: local
// directories always, and optionally an S3-compatible bucket.
package publish

import (
	"context"
	"os"
	"path/filepath"

	"github.com/CameronBrooks11/projects-registry/pkg/constants"
	"github.com/CameronBrooks11/projects-registry/pkg/errors"
)

// Destination receives a named document. Put returns a display location
// for the written copy.
type Destination interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
}

// Dir writes documents into a local directory, creating it on demand.
type Dir struct {
	Path string
}

// NewDir returns a destination writing into path.
func NewDir(path string) *Dir {
	return &Dir{Path: path}
}

// Put writes data to Path/name, replacing any existing file.
func (d *Dir) Put(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(d.Path, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", d.Path, err)
	}
	target := filepath.Join(d.Path, name)
	if err := os.WriteFile(target, data, constants.FilePermissions); err != nil {
		return "", errors.WrapIO("write", target, err)
	}
	return target, nil
}

// Dirs returns one Dir destination per path.
func Dirs(paths ...string) []Destination {
	out := make([]Destination, 0, len(paths))
	for _, p := range paths {
		out = append(out, NewDir(p))
	}
	return out
}
