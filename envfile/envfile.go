// Package envfile edits the .env file shared by the command-line tools.
//
// Edits are line based: an existing KEY= line is rewritten in place and every
// other line, comments and ordering included, is preserved.
package envfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Entry is a key with the value written when it is added, and the comment
// section it is grouped under.
type Entry struct {
	Key     string
	Value   string
	Section string
}

// File is the in-memory content of a .env file.
type File struct {
	path  string
	lines []string
}

// Open reads path. A missing file opens as empty.
func Open(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	f := &File{path: path}
	if len(content) > 0 {
		f.lines = strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
	}
	return f, nil
}

// Has reports whether a KEY= line exists, whatever its value.
func (f *File) Has(key string) bool {
	return f.index(key) >= 0
}

// Set replaces the KEY= line, or appends one under the "# section" header,
// adding the header when it is absent.
func (f *File) Set(key, value, section string) {
	line := key + "=" + value
	if i := f.index(key); i >= 0 {
		f.lines[i] = line
		return
	}

	if section != "" && !f.hasHeader(section) {
		if len(f.lines) > 0 && strings.TrimSpace(f.lines[len(f.lines)-1]) != "" {
			f.lines = append(f.lines, "")
		}
		f.lines = append(f.lines, "# "+section)
	}
	f.lines = append(f.lines, line)
}

// Ensure appends placeholder lines for the entries that are missing and
// returns their keys. Existing lines are left untouched.
func (f *File) Ensure(entries ...Entry) []string {
	var added []string
	for _, e := range entries {
		if f.Has(e.Key) {
			continue
		}
		f.Set(e.Key, e.Value, e.Section)
		added = append(added, e.Key)
	}
	return added
}

// Values parses the current content.
func (f *File) Values() (map[string]string, error) {
	return godotenv.Unmarshal(f.String())
}

// Lines returns the non-comment lines whose key contains substr.
func (f *File) Lines(substr string) []string {
	var out []string
	for _, l := range f.lines {
		trimmed := strings.TrimSpace(l)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if key, _, ok := strings.Cut(trimmed, "="); ok && strings.Contains(key, substr) {
			out = append(out, trimmed)
		}
	}
	return out
}

func (f *File) String() string {
	if len(f.lines) == 0 {
		return ""
	}
	return strings.Join(f.lines, "\n") + "\n"
}

// Save writes the content back to the file it was opened from.
func (f *File) Save() error {
	if err := os.WriteFile(f.path, []byte(f.String()), 0o600); err != nil {
		return fmt.Errorf("could not write %s: %w", f.path, err)
	}
	return nil
}

func (f *File) index(key string) int {
	prefix := key + "="
	for i, l := range f.lines {
		trimmed := strings.TrimPrefix(strings.TrimSpace(l), "export ")
		if strings.HasPrefix(trimmed, prefix) {
			return i
		}
	}
	return -1
}

func (f *File) hasHeader(section string) bool {
	header := "# " + section
	for _, l := range f.lines {
		if strings.TrimSpace(l) == header {
			return true
		}
	}
	return false
}

// Set opens path, sets key and saves it.
func Set(path, key, value, section string) error {
	f, err := Open(path)
	if err != nil {
		return err
	}
	f.Set(key, value, section)
	return f.Save()
}

// EnsureKeys opens path and appends the missing entries, saving only when
// something was added.
func EnsureKeys(path string, entries ...Entry) ([]string, error) {
	f, err := Open(path)
	if err != nil {
		return nil, err
	}
	added := f.Ensure(entries...)
	if len(added) == 0 {
		return nil, nil
	}
	return added, f.Save()
}

// Read parses path with godotenv.
func Read(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	return values, err
}
