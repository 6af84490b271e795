// Package walker discovers content files in a content source and fingerprints
// them so reloads can tell whether anything changed.
package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
)

// DefaultMaxFileSize is the maximum file size to process (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	RelPath     string // Slash-separated path relative to the source root.
	Size        int64  // File size in bytes.
	Language    string // Highlighter language for code samples, "" otherwise.
	ContentHash string // SHA-256 hex digest of the file content.
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	Include     []string // Glob patterns; only matching files are included.
	Exclude     []string // Glob patterns; matching files are excluded.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Walk traverses fsys and returns metadata for every file that passes
// filtering, sorted by path. Binary and oversized files are skipped.
func Walk(fsys fs.FS, config WalkerConfig) ([]FileInfo, error) {
	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	var files []FileInfo

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}

		if d.IsDir() {
			if p != "." && shouldExcludeDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		if !MatchesInclude(p, config.Include) || MatchesExclude(p, config.Exclude) {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil || isBinary(data) {
			return nil
		}

		files = append(files, FileInfo{
			RelPath:     p,
			Size:        info.Size(),
			Language:    DetectLanguage(path.Base(p)),
			ContentHash: hashBytes(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// Changed returns the paths that were added, removed or modified between two
// walks, sorted.
func Changed(before, after []FileInfo) []string {
	old := make(map[string]string, len(before))
	for _, f := range before {
		old[f.RelPath] = f.ContentHash
	}

	var out []string
	for _, f := range after {
		hash, ok := old[f.RelPath]
		if !ok || hash != f.ContentHash {
			out = append(out, f.RelPath)
		}
		delete(old, f.RelPath)
	}
	for p := range old {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// isBinary checks the first 512 bytes for NUL bytes.
func isBinary(data []byte) bool {
	n := len(data)
	if n > 512 {
		n = 512
	}
	for i := 0; i < n; i++ {
		if data[i] == 0 {
			return true
		}
	}
	return false
}

// HashFile computes the SHA-256 digest of one file in fsys.
func HashFile(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func hashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
