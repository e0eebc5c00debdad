// Package theme resolves and installs template sets. A theme is a directory
// holding the four template files the renderer stamps (page, document, group,
// link). Built-in themes are embedded and register via their own init().
package theme

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Template file names within a theme directory.
const (
	PageFile     = "page.template.html"
	DocumentFile = "document.template.html"
	GroupFile    = "group.template.html"
	LinkFile     = "link.template.html"
)

// Set holds the resolved file paths of one theme's templates.
type Set struct {
	Page     string
	Document string
	Group    string
	Link     string
}

var (
	registryMu sync.RWMutex
	registry   = map[string]fs.FS{}
)

// Register registers a built-in theme's file set. Duplicate names are ignored.
func Register(name string, files fs.FS) {
	if name == "" || files == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		return
	}
	registry[name] = files
}

// Builtin returns the names of all registered built-in themes, sorted.
func Builtin() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve locates the template set for theme name under dir and verifies all
// four files exist. This is the startup precondition check; a missing file
// here fails the run before any parsing happens.
func Resolve(dir, name string) (Set, error) {
	base := filepath.Join(dir, name)
	set := Set{
		Page:     filepath.Join(base, PageFile),
		Document: filepath.Join(base, DocumentFile),
		Group:    filepath.Join(base, GroupFile),
		Link:     filepath.Join(base, LinkFile),
	}
	for _, path := range []string{set.Page, set.Document, set.Group, set.Link} {
		if _, err := os.Stat(path); err != nil {
			if os.IsNotExist(err) {
				return Set{}, fmt.Errorf("theme %q is missing template %s (run 'homer init' to install built-in themes)", name, path)
			}
			return Set{}, fmt.Errorf("stat template %s: %w", path, err)
		}
	}
	return set, nil
}

// Install writes a registered built-in theme into dir/name. Existing files are
// only overwritten when force is set.
func Install(dir, name string, force bool) error {
	registryMu.RLock()
	files, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return fmt.Errorf("unknown built-in theme %q (available: %v)", name, Builtin())
	}

	base := filepath.Join(dir, name)
	if err := os.MkdirAll(base, 0o755); err != nil {
		return fmt.Errorf("create theme directory %s: %w", base, err)
	}

	for _, file := range []string{PageFile, DocumentFile, GroupFile, LinkFile} {
		dst := filepath.Join(base, file)
		if _, err := os.Stat(dst); err == nil && !force {
			continue
		}
		data, err := fs.ReadFile(files, file)
		if err != nil {
			return fmt.Errorf("read embedded template %s/%s: %w", name, file, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return fmt.Errorf("write template %s: %w", dst, err)
		}
	}
	return nil
}
