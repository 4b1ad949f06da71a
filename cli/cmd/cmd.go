package cmd

import (
	"context"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/klauspost/readahead"
)

// contextKey is used to store a [kong.Context] value in [context.Context].
type contextKey struct{}

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the standard streams of the process.
func StdStreams() *Streams {
	return &Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readFile reads the named file through a read-ahead buffer. The name "-"
// reads from in.
func readFile(in io.Reader, name string) ([]byte, error) {
	r := in

	if name != stdinSource {
		file, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer file.Close()

		r = file
	}

	ra := readahead.NewReader(r)
	defer ra.Close()

	return io.ReadAll(ra)
}

// readTemplate reads the named template file. A final newline belongs to
// the file, not the template, and is removed.
func readTemplate(in io.Reader, name string) (string, error) {
	data, err := readFile(in, name)
	if err != nil {
		return "", err
	}

	return strings.TrimSuffix(string(data), "\n"), nil
}

// fileKey uniquely identifies a file by its device and inode numbers.
// This handles deduplication across symlinks, absolute/relative paths, and
// special device files.
type fileKey struct {
	dev uint64
	ino uint64
}

// uniqueFiles returns names without the entries that refer to a file listed
// before. All occurrences of "-" collapse into one, placed last so stdin is
// read after all regular files. Names that cannot be stated are kept so that
// reading them reports the error.
func uniqueFiles(names []string) []string {
	seen := make(map[fileKey]struct{}, len(names))
	uniq := make([]string, 0, len(names))
	stdin := false

	for _, name := range names {
		if name == stdinSource {
			stdin = true

			continue
		}

		if key, ok := statKey(name); ok {
			if _, dup := seen[key]; dup {
				continue
			}

			seen[key] = struct{}{}
		}

		uniq = append(uniq, name)
	}

	if stdin {
		uniq = append(uniq, stdinSource)
	}

	return uniq
}

// statKey returns the fileKey of the file at path, following symlinks.
func statKey(path string) (fileKey, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return fileKey{}, false
	}

	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return fileKey{}, false
	}

	//nolint:unconvert // Dev is not uint64 on every platform
	return fileKey{dev: uint64(stat.Dev), ino: stat.Ino}, true
}
