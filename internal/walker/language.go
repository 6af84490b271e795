package walker

import (
	"path"
	"strings"
)

// extensionToLanguage maps sample file extensions to highlighter lexer names.
var extensionToLanguage = map[string]string{
	".java":  "java",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".scala": "scala",
	".cs":    "csharp",
	".cpp":   "cpp",
	".cc":    "cpp",
	".hpp":   "cpp",
	".h":     "c",
	".c":     "c",
	".go":    "go",
	".py":    "python",
	".rb":    "ruby",
	".php":   "php",
	".swift": "swift",
	".rs":    "rust",
	".ts":    "typescript",
	".tsx":   "tsx",
	".js":    "javascript",
	".dart":  "dart",
}

// DetectLanguage returns the lexer name for a code sample file, or "" when
// the extension is not a known source language. Content files (.yml, .md)
// yield "".
func DetectLanguage(filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return extensionToLanguage[ext]
}
