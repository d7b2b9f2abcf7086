package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"go.jacobcolvin.com/luadoc/extract"
)

const (
	// StdinPath is the argument and [extract.Source] path for standard input.
	StdinPath = "-"

	luaPattern = "**/*.lua"
)

// collectSources reads every file named by args, in argument order.
// Directories contribute their *.lua files and glob patterns their matches,
// each sorted by path. A file named more than once is read once.
func collectSources(stdin io.Reader, args []string) ([]extract.Source, error) {
	paths, err := expandArgs(args)
	if err != nil {
		return nil, err
	}

	files := make([]extract.Source, 0, len(paths))

	for _, path := range paths {
		var data []byte

		if path == StdinPath {
			data, err = io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("%w: stdin: %w", ErrReadInput, err)
			}
		} else {
			data, err = os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
			}
		}

		files = append(files, extract.Source{Path: path, Content: data})
	}

	return files, nil
}

func expandArgs(args []string) ([]string, error) {
	var out []string

	seen := map[string]bool{}
	add := func(paths ...string) {
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}

	for _, arg := range args {
		if arg == StdinPath {
			add(arg)

			continue
		}

		info, err := os.Stat(arg)

		switch {
		case err == nil && info.IsDir():
			matches, globErr := glob(arg, luaPattern)
			if globErr != nil {
				return nil, globErr
			}

			add(matches...)

		case err == nil:
			add(filepath.Clean(arg))

		case isPattern(arg):
			base, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))

			matches, globErr := glob(filepath.FromSlash(base), pattern)
			if globErr != nil {
				return nil, globErr
			}

			if len(matches) == 0 {
				return nil, fmt.Errorf("%w: no files match %q", ErrReadInput, arg)
			}

			add(matches...)

		default:
			return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
		}
	}

	return out, nil
}

// glob returns the regular files under base matching pattern, sorted.
func glob(base, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(base), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: glob %q in %s: %w", ErrReadInput, pattern, base, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		paths = append(paths, filepath.Join(base, filepath.FromSlash(m)))
	}

	slices.Sort(paths)

	return paths, nil
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}
