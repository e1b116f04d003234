// Package langdetect classifies files and code snippets with go-enry so the
// runner knows which files to lint and the markdown processor knows which
// code blocks hold JavaScript.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Kind is the lint treatment of a file.
type Kind int

const (
	// KindOther files are not linted.
	KindOther Kind = iota
	// KindJavaScript files are linted directly.
	KindJavaScript
	// KindMarkdown files are linted through the markdown processor.
	KindMarkdown
)

func (k Kind) String() string {
	switch k {
	case KindJavaScript:
		return "javascript"
	case KindMarkdown:
		return "markdown"
	default:
		return "other"
	}
}

const (
	enryJavaScript = "JavaScript"
	enryMarkdown   = "Markdown"

	langText = "text"
)

// Classify returns the kind of path, judged by its extension.
func Classify(path string) Kind {
	lang, _ := enry.GetLanguageByExtension(filepath.Base(path))
	switch lang {
	case enryJavaScript:
		return KindJavaScript
	case enryMarkdown:
		return KindMarkdown
	}
	return KindOther
}

// IsVendor reports whether a slash-separated relative path points into
// third-party code such as node_modules or bower_components.
func IsVendor(rel string) bool {
	return enry.IsVendor(filepath.ToSlash(rel))
}

// IsJavaScriptTag reports whether a fenced code block info tag names
// JavaScript ("js", "javascript", "node", ...).
func IsJavaScriptTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch tag {
	case "":
		return false
	case "mjs", "cjs", "jsx":
		return true
	}
	lang, ok := enry.GetLanguageByAlias(tag)
	return ok && lang == enryJavaScript
}

// Detect guesses the language of an untagged snippet. It returns a
// lowercase language name, or "text" when no guess is safe.
func Detect(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return strings.ToLower(lang)
	}

	// Cheap markers first; the classifier is unreliable on short snippets.
	if looksLikeJavaScript(string(trimmed)) {
		return strings.ToLower(enryJavaScript)
	}

	candidates := []string{enryJavaScript, "TypeScript", "JSON", "Shell", "Python", "Go"}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return strings.ToLower(lang)
	}
	return langText
}

func looksLikeJavaScript(src string) bool {
	if strings.HasPrefix(src, "{") || strings.HasPrefix(src, "package ") {
		return false
	}
	markers := []string{"=>", "console.log", "function ", "require(", "module.exports"}
	for _, marker := range markers {
		if strings.Contains(src, marker) {
			return true
		}
	}
	return strings.HasPrefix(src, "const ") || strings.HasPrefix(src, "let ") || strings.HasPrefix(src, "var ")
}
