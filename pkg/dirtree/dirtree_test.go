package dirtree

import (
	"reflect"
	"testing"
)

func TestBuild(t *testing.T) {
	tree := Build([]string{"a/b/x", "a/b/y", "a/c/z"}, 10)

	want := map[string]Count{
		"":    {Own: 0, Subtree: 3},
		"a":   {Own: 0, Subtree: 3},
		"a/b": {Own: 2, Subtree: 2},
		"a/c": {Own: 1, Subtree: 1},
	}
	for dir, wantCount := range want {
		got, ok := tree.Get(dir)
		if !ok {
			t.Errorf("missing directory %q", dir)
			continue
		}
		if got != wantCount {
			t.Errorf("Get(%q) = %+v, want %+v", dir, got, wantCount)
		}
	}
	if rows := tree.Rows(); len(rows) != len(want) {
		t.Errorf("Rows() has %d entries, want %d", len(rows), len(want))
	}
}

func TestBuildDepthCap(t *testing.T) {
	tree := Build([]string{"a/b/c/d/x", "a/b/y", "top.go", "./a/z"}, 1)

	tests := []struct {
		dir  string
		want Count
	}{
		{"", Count{Own: 1, Subtree: 4}},
		{"a", Count{Own: 3, Subtree: 3}},
	}
	for _, tt := range tests {
		if got, _ := tree.Get(tt.dir); got != tt.want {
			t.Errorf("Get(%q) = %+v, want %+v", tt.dir, got, tt.want)
		}
	}
	if _, ok := tree.Get("a/b"); ok {
		t.Error("directories below the depth cap should not exist")
	}
}

func TestBuildDepthZero(t *testing.T) {
	tree := Build([]string{"a/x", "b/c/y"}, 0)
	rows := tree.Rows()
	want := []Row{{Path: "", Count: Count{Own: 2, Subtree: 2}}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Rows() = %+v, want %+v", rows, want)
	}
}

func TestRowsOrder(t *testing.T) {
	tree := Build([]string{"b/x", "a/b/x", "a/x", "a-b/x"}, 10)

	var got []string
	for _, row := range tree.Rows() {
		got = append(got, row.Path)
	}
	want := []string{"", "a", "a-b", "a/b", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rows() order = %q, want %q", got, want)
	}
}

func TestRowHelpers(t *testing.T) {
	tests := []struct {
		row        Row
		wantDepth  int
		wantParent string
		wantBase   string
	}{
		{Row{Path: ""}, 0, "", ""},
		{Row{Path: "a"}, 1, "", "a"},
		{Row{Path: "a/b/c"}, 3, "a/b", "c"},
	}
	for _, tt := range tests {
		if got := tt.row.Depth(); got != tt.wantDepth {
			t.Errorf("%q Depth() = %d, want %d", tt.row.Path, got, tt.wantDepth)
		}
		if got := tt.row.Parent(); got != tt.wantParent {
			t.Errorf("%q Parent() = %q, want %q", tt.row.Path, got, tt.wantParent)
		}
		if got := tt.row.Base(); got != tt.wantBase {
			t.Errorf("%q Base() = %q, want %q", tt.row.Path, got, tt.wantBase)
		}
	}
}
