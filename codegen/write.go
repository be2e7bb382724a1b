package codegen

import (
	"os"
	"path/filepath"

	"github.com/mensura/mensura/errors"
	"github.com/mensura/mensura/logger"
)

// WriteFiles writes a fully generated file set into dir, creating it if
// needed. Callers must only pass file sets from a successful Generate:
// by the time anything touches disk the whole set is already known good.
func WriteFiles(dir string, files []File) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "cannot create output directory %s", dir)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Content, 0o644); err != nil {
			return errors.Wrapf(err, "cannot write %s", path)
		}
		logger.Logger.Debugw("wrote generated file", "path", path, "bytes", len(f.Content))
	}
	return nil
}
