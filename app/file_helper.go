package app

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// jsExtensions lists the file extensions collected for analysis.
var jsExtensions = map[string]bool{
	".js":  true,
	".mjs": true,
	".cjs": true,
	".jsx": true,
}

// FileHelper collects JavaScript source files from input paths.
type FileHelper struct{}

// NewFileHelper creates a new FileHelper
func NewFileHelper() *FileHelper {
	return &FileHelper{}
}

// CollectJSFiles gathers JavaScript files from the given paths, honoring
// include/exclude patterns and, when asked, each directory tree's
// .gitignore.
func (h *FileHelper) CollectJSFiles(paths []string, recursive bool, includePatterns, excludePatterns []string, respectGitignore bool) ([]string, error) {
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if h.isJSFile(path) && h.isIncluded(path, includePatterns) && !h.isExcluded(path, excludePatterns) {
				files = append(files, path)
			}
			continue
		}

		ignorer := h.loadGitignore(path, respectGitignore)

		if recursive {
			err = filepath.Walk(path, func(filePath string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				rel, relErr := filepath.Rel(path, filePath)
				if relErr != nil {
					rel = filePath
				}

				if info.IsDir() {
					dirName := filepath.Base(filePath)
					if h.matchesAny(dirName, excludePatterns) {
						return filepath.SkipDir
					}
					if ignorer != nil && rel != "." && ignorer.MatchesPath(rel+"/") {
						return filepath.SkipDir
					}
					return nil
				}

				if ignorer != nil && ignorer.MatchesPath(rel) {
					return nil
				}
				if h.isJSFile(filePath) && h.isIncluded(filePath, includePatterns) && !h.isExcluded(filePath, excludePatterns) {
					files = append(files, filePath)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			filePath := filepath.Join(path, entry.Name())
			if ignorer != nil && ignorer.MatchesPath(entry.Name()) {
				continue
			}
			if h.isJSFile(filePath) && h.isIncluded(filePath, includePatterns) && !h.isExcluded(filePath, excludePatterns) {
				files = append(files, filePath)
			}
		}
	}

	return files, nil
}

// loadGitignore parses <root>/.gitignore when present.
func (h *FileHelper) loadGitignore(root string, respectGitignore bool) *gitignore.GitIgnore {
	if !respectGitignore {
		return nil
	}
	ignorer, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil
	}
	return ignorer
}

func (h *FileHelper) isJSFile(path string) bool {
	return jsExtensions[strings.ToLower(filepath.Ext(path))]
}

func (h *FileHelper) isIncluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return h.matchesAny(filepath.Base(path), patterns)
}

func (h *FileHelper) isExcluded(path string, patterns []string) bool {
	return h.matchesAny(filepath.Base(path), patterns)
}

func (h *FileHelper) matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if pattern == name {
			return true
		}
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
	}
	return false
}
