package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// Files we never review: documentation, data, lockfiles, generated or
// cache artifacts.
var skipPatterns = []string{
	".md", ".txt", ".json", ".yml", ".yaml", ".toml",
	".lock", ".sum", ".pyc", "__pycache__",
	"requirements.txt", ".gitignore", ".min.js",
}

// ShouldReview reports whether a file path is worth reviewing. Python
// files always are and get the full pipeline. Other files are reviewed
// (LLM only, the static tools are Python-specific) when chroma
// recognizes them as a programming language.
func ShouldReview(path string) bool {
	if strings.HasSuffix(path, ".py") {
		return true
	}

	lower := strings.ToLower(path)
	for _, pattern := range skipPatterns {
		if strings.HasSuffix(lower, pattern) {
			return false
		}
	}

	return matchLexer(path) != nil
}

// LanguageTag returns a lower-cased language name for a file path,
// suitable for markdown code fences. Unrecognized files get no tag.
func LanguageTag(path string) string {
	lexer := matchLexer(path)
	if lexer == nil {
		return ""
	}
	return strings.ToLower(lexer.Config().Name)
}

func matchLexer(path string) chroma.Lexer {
	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		if ext := filepath.Ext(path); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	return lexer
}
