package source

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MarkupExtensions are the file extensions collected when the markup path
// is a directory.
var MarkupExtensions = map[string]bool{
	".html":   true,
	".htm":    true,
	".xhtml":  true,
	".vue":    true,
	".svelte": true,
	".tmpl":   true,
	".hbs":    true,
	".ejs":    true,
}

// skipDirs contains directory names to skip during markup scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	".cache":       true,
}

// FindMarkup recursively finds markup files under dir, sorted.
func FindMarkup(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			if path != dir && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if MarkupExtensions[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// LoadMarkup is Load for markup: a directory is scanned with FindMarkup
// and the contents of every file are joined with newlines.
func LoadMarkup(path string, stdin io.Reader) (string, []string, error) {
	if path == "" || path == Stdin {
		text, err := Load(path, stdin)
		return text, nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if !info.IsDir() {
		text, err := Load(path, stdin)
		return text, []string{path}, err
	}

	files, err := FindMarkup(path)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if len(files) == 0 {
		return "", nil, fmt.Errorf("%w: no markup files under %s", ErrUnavailable, path)
	}

	var b strings.Builder
	for _, f := range files {
		text, err := Load(f, nil)
		if err != nil {
			return "", nil, err
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), files, nil
}
