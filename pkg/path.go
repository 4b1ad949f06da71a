package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

// Prefix returns the base name of the running executable, used to name the
// configuration and cache directories and to derive [EnvPrefix].
//
// Two substitutions apply:
//   - "__debug_bin<N>" (the default output of dlv) becomes [Name]
//   - leading dots are removed
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		if exe, err := os.Executable(); err == nil {
			id = exe
		}

		id = filepath.Base(id)
		id = strings.TrimSuffix(id, filepath.Ext(id))

		id = debugBin.ReplaceAllString(id, Name)
		id = strings.TrimLeft(id, ".")

		if id == "" {
			return Name
		}

		return id
	},
)

//nolint:gochecknoglobals
var (
	debugBin  = regexp.MustCompile(`^__debug_bin\d*$`)
	notEnvVar = regexp.MustCompile(`[^A-Z0-9]+`)
)

// EnvPrefix returns [Prefix] as an environment variable prefix, for example
// "INTERP".
func EnvPrefix() string {
	return strings.Trim(notEnvVar.ReplaceAllString(strings.ToUpper(Prefix()), "_"), "_")
}

// ConfigDir returns the directory holding configuration files.
//
// $<PREFIX>_CONFIG_DIR overrides the default, a [Prefix] subdirectory of
// [os.UserConfigDir].
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string {
		return userDir("CONFIG_DIR", os.UserConfigDir, ".config")
	},
)

// CacheDir returns the directory holding transient files such as the REPL
// history and profiles.
//
// $<PREFIX>_CACHE_DIR overrides the default, a [Prefix] subdirectory of
// [os.UserCacheDir].
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string {
		return userDir("CACHE_DIR", os.UserCacheDir, ".cache")
	},
)

func userDir(env string, base func() (string, error), dotDir string) string {
	if dir := os.Getenv(EnvPrefix() + "_" + env); dir != "" {
		return dir
	}

	dir, err := base()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			if dir, err = os.Getwd(); err != nil {
				dir = "."
			}

			return filepath.Join(dir, "."+Prefix())
		}

		dir = filepath.Join(home, dotDir)
	}

	return filepath.Join(dir, Prefix())
}
