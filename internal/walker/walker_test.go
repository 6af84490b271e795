package walker

import (
	"reflect"
	"strings"
	"testing"
	"testing/fstest"
)

func sampleFS() fstest.MapFS {
	return fstest.MapFS{
		"site.yml":                       {Data: []byte("title: OOP\n")},
		"topics/inheritance.yml":         {Data: []byte("id: inheritance\n")},
		"topics/static.yml":              {Data: []byte("id: static\n")},
		"topics/drafts/scratch.yml":      {Data: []byte("id: scratch\n")},
		"samples/inheritance/Dog.java":   {Data: []byte("class Dog extends Animal {}\n")},
		"samples/inheritance/logo.png":   {Data: []byte{0x89, 'P', 'N', 'G', 0x00, 0x01}},
		".git/HEAD":                      {Data: []byte("ref: refs/heads/main\n")},
		"node_modules/pkg/index.js":      {Data: []byte("module.exports = {}\n")},
		"samples/static/Counter.java":    {Data: []byte("class Counter { static int count; }\n")},
		"samples/static/notes/README.md": {Data: []byte("# notes\n")},
	}
}

func relPaths(files []FileInfo) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestWalk_BasicTraversal(t *testing.T) {
	files, err := Walk(sampleFS(), WalkerConfig{})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	want := []string{
		"samples/inheritance/Dog.java",
		"samples/static/Counter.java",
		"samples/static/notes/README.md",
		"site.yml",
		"topics/drafts/scratch.yml",
		"topics/inheritance.yml",
		"topics/static.yml",
	}
	if got := relPaths(files); !reflect.DeepEqual(got, want) {
		t.Errorf("Walk() paths:\n got %v\nwant %v", got, want)
	}
}

func TestWalk_IncludeExclude(t *testing.T) {
	files, err := Walk(sampleFS(), WalkerConfig{
		Include: []string{"topics/**/*.yml", "site.yml"},
		Exclude: []string{"topics/drafts/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	want := []string{"site.yml", "topics/inheritance.yml", "topics/static.yml"}
	if got := relPaths(files); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestWalk_BaseNameMatch(t *testing.T) {
	files, err := Walk(sampleFS(), WalkerConfig{Include: []string{"*.java"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("got %v", relPaths(files))
	}
	for _, f := range files {
		if f.Language != "java" {
			t.Errorf("%s: Language = %q", f.RelPath, f.Language)
		}
	}
}

func TestWalk_SkipsLargeFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"small.yml": {Data: []byte("a: 1\n")},
		"big.yml":   {Data: []byte(strings.Repeat("x", 64))},
	}

	files, err := Walk(fsys, WalkerConfig{MaxFileSize: 32})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got := relPaths(files); !reflect.DeepEqual(got, []string{"small.yml"}) {
		t.Errorf("got %v", got)
	}
}

func TestWalk_ContentHashConsistency(t *testing.T) {
	fsys := sampleFS()
	first, _ := Walk(fsys, WalkerConfig{})
	second, _ := Walk(fsys, WalkerConfig{})
	if !reflect.DeepEqual(first, second) {
		t.Error("two walks of the same tree differ")
	}

	for _, f := range first {
		want, err := HashFile(fsys, f.RelPath)
		if err != nil {
			t.Fatalf("HashFile(%s): %v", f.RelPath, err)
		}
		if f.ContentHash != want {
			t.Errorf("%s: hash %s, HashFile %s", f.RelPath, f.ContentHash, want)
		}
	}
}

func TestChanged(t *testing.T) {
	fsys := sampleFS()
	before, _ := Walk(fsys, WalkerConfig{})

	if got := Changed(before, before); len(got) != 0 {
		t.Errorf("Changed(same) = %v", got)
	}

	fsys["topics/static.yml"] = &fstest.MapFile{Data: []byte("id: static\norder: 6\n")}
	fsys["topics/encapsulation.yml"] = &fstest.MapFile{Data: []byte("id: encapsulation\n")}
	delete(fsys, "site.yml")
	after, _ := Walk(fsys, WalkerConfig{})

	want := []string{"site.yml", "topics/encapsulation.yml", "topics/static.yml"}
	if got := Changed(before, after); !reflect.DeepEqual(got, want) {
		t.Errorf("Changed() = %v, want %v", got, want)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := map[string]string{
		"Dog.java":      "java",
		"Shape.KT":      "kotlin",
		"main.go":       "go",
		"animal.py":     "python",
		"topic.yml":     "",
		"README.md":     "",
		"Makefile":      "",
		"dir/Car.java":  "java",
		"Program.cs":    "csharp",
		"vehicle.hpp":   "cpp",
		"component.tsx": "tsx",
	}
	for name, want := range tests {
		if got := DetectLanguage(name); got != want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestValidatePatterns(t *testing.T) {
	if err := ValidatePatterns([]string{"topics/**/*.yml", "*.java"}); err != nil {
		t.Errorf("valid patterns rejected: %v", err)
	}
	if err := ValidatePatterns([]string{"topics/[a-"}); err == nil {
		t.Error("malformed pattern accepted")
	}
}
