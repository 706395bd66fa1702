// Package dirtree rolls match locations up into a directory tree with
// per-directory own and subtree counts.
package dirtree

import (
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Count holds the counters of one directory.
type Count struct {
	Own     int // matches in files directly inside the directory
	Subtree int // matches at or below the directory
}

// Row is one directory of a rendered tree. The root has an empty Path.
type Row struct {
	Path  string
	Count Count
}

// Depth returns the number of path segments of the row.
func (r Row) Depth() int {
	if r.Path == "" {
		return 0
	}
	return strings.Count(r.Path, "/") + 1
}

// Parent returns the path of the enclosing directory.
func (r Row) Parent() string {
	if i := strings.LastIndexByte(r.Path, '/'); i >= 0 {
		return r.Path[:i]
	}
	return ""
}

// Base returns the last path segment.
func (r Row) Base() string {
	return r.Path[strings.LastIndexByte(r.Path, '/')+1:]
}

// Tree maps directory paths to counters.
type Tree struct {
	nodes map[string]*Count
}

// Build aggregates one match per entry of files. Directory paths deeper
// than depth segments are truncated to depth.
func Build(files []string, depth int) *Tree {
	t := &Tree{nodes: make(map[string]*Count)}
	for _, file := range files {
		t.add(file, depth)
	}
	return t
}

func (t *Tree) add(file string, depth int) {
	segments := dirSegments(file)
	if depth >= 0 && len(segments) > depth {
		segments = segments[:depth]
	}

	for i := 0; i <= len(segments); i++ {
		t.node(strings.Join(segments[:i], "/")).Subtree++
	}
	t.node(strings.Join(segments, "/")).Own++
}

func (t *Tree) node(key string) *Count {
	c, ok := t.nodes[key]
	if !ok {
		c = &Count{}
		t.nodes[key] = c
	}
	return c
}

func dirSegments(file string) []string {
	dir := path.Dir(path.Clean(filepath.ToSlash(file)))
	if dir == "." {
		return nil
	}
	return strings.FieldsFunc(dir, func(r rune) bool { return r == '/' })
}

// Get returns the counters of a directory.
func (t *Tree) Get(dir string) (Count, bool) {
	c, ok := t.nodes[dir]
	if !ok {
		return Count{}, false
	}
	return *c, true
}

// Rows returns every directory sorted by path, then path length.
func (t *Tree) Rows() []Row {
	rows := make([]Row, 0, len(t.nodes))
	for p, c := range t.nodes {
		rows = append(rows, Row{Path: p, Count: *c})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Path != rows[j].Path {
			return rows[i].Path < rows[j].Path
		}
		return len(rows[i].Path) < len(rows[j].Path)
	})
	return rows
}
