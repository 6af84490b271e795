package site

import (
	"encoding/json"
	"os"

	"github.com/ziadkadry99/oopconcepts/internal/search"
)

// WriteSearchIndex writes the documents as JSON for the exported site's
// client-side search.
func WriteSearchIndex(docs []search.Document, outputPath string) error {
	if docs == nil {
		docs = []search.Document{}
	}
	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
