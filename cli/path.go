package cli

import (
	"os"
	"path/filepath"

	"github.com/ardnew/interp/pkg"
)

// baseConfig is the base name of the configuration files.
const baseConfig = "config"

// defaultDirMode is the permission mode of created directories.
const defaultDirMode os.FileMode = 0o700

// dirs are the runtime directories of the CLI.
type dirs struct {
	config string
	cache  string
}

// userDirs returns the directories of the current user.
func userDirs() dirs {
	return dirs{config: pkg.ConfigDir(), cache: pkg.CacheDir()}
}

// configPath returns the path formed by joining the configuration directory
// with elem.
func (d dirs) configPath(elem ...string) string {
	return filepath.Join(append([]string{d.config}, elem...)...)
}

// mkdirAll creates the configuration and cache directories.
func (d dirs) mkdirAll() error {
	for _, dir := range []string{d.config, d.cache} {
		if err := os.MkdirAll(dir, defaultDirMode); err != nil {
			return err
		}
	}

	return nil
}
