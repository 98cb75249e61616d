// Package scanner implements file discovery and language classification: the
// first pass over a source tree, before any AST extraction.
package scanner

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codemap/internal/errors"
	"codemap/internal/logging"
	"codemap/internal/model"
	"codemap/internal/paths"
)

// Directories pruned during filesystem walks.
var pruneDirs = map[string]bool{
	"__pycache__":      true,
	"node_modules":     true,
	".venv":            true,
	".git":             true,
	paths.StateDirName: true,
}

// languageByExt maps lower-cased file extensions to languages.
var languageByExt = map[string]model.Language{
	".py":  model.LangPython,
	".ts":  model.LangTypeScript,
	".tsx": model.LangTypeScript,
	".js":  model.LangJavaScript,
	".jsx": model.LangJavaScript,
}

// Scanner discovers source files under one project root.
type Scanner struct {
	root     string
	excludes []string
	useGit   bool
	logger   *logging.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithExcludes adds directory names pruned during walks.
func WithExcludes(excludes []string) Option {
	return func(s *Scanner) { s.excludes = excludes }
}

// WithoutGit disables sourcing the candidate set from git.
func WithoutGit() Option {
	return func(s *Scanner) { s.useGit = false }
}

// NewScanner creates a scanner for the given root.
func NewScanner(root string, logger *logging.Logger, opts ...Option) *Scanner {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &Scanner{
		root:   root,
		useGit: true,
		logger: logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DetectLanguage classifies a path by extension, case-insensitively.
func DetectLanguage(path string) model.Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := languageByExt[ext]; ok {
		return lang
	}
	return model.LangUnknown
}

// DiscoverFiles returns FileInfo for every source file under the root. In a
// git repository the candidate set is the tracked files; otherwise the tree
// is walked with the prune set applied. Files whose language is unknown are
// dropped in both modes.
func (s *Scanner) DiscoverFiles() ([]model.FileInfo, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, errors.NewMapError(errors.ScanFailed, "failed to resolve project root", err, nil)
	}

	var candidates []string
	if s.useGit && isGitRepo(root) {
		tracked, gitErr := gitTrackedFiles(root)
		if gitErr == nil {
			candidates = tracked
		} else {
			s.logger.Debug("git ls-files failed, falling back to walk", map[string]interface{}{
				"error": gitErr.Error(),
			})
		}
	}
	if candidates == nil {
		candidates, err = s.walkFiles(root)
		if err != nil {
			return nil, errors.NewMapError(errors.ScanFailed, "failed to walk project tree", err, nil)
		}
	}

	var files []model.FileInfo
	for _, path := range candidates {
		lang := DetectLanguage(path)
		if lang == model.LangUnknown {
			continue
		}

		info, statErr := os.Stat(path)
		if statErr != nil || info.IsDir() {
			// Tracked but deleted from disk, or not a regular file.
			continue
		}

		files = append(files, model.FileInfo{
			Path:      path,
			SizeBytes: info.Size(),
			Language:  lang,
			LineCount: countLines(path),
		})
	}

	s.logger.Debug("discovered source files", map[string]interface{}{
		"root":  root,
		"count": len(files),
	})

	return files, nil
}

// walkFiles walks the tree collecting regular-file paths, pruning state and
// dependency directories.
func (s *Scanner) walkFiles(root string) ([]string, error) {
	var out []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Skip inaccessible entries, continue walking
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (pruneDirs[name] || s.isExcluded(name)) {
				return filepath.SkipDir
			}
			return nil
		}
		out = append(out, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Scanner) isExcluded(name string) bool {
	for _, e := range s.excludes {
		if e == name {
			return true
		}
	}
	return false
}

// countLines returns the newline-delimited line count of a file. Unreadable
// files count as zero lines; the read failure surfaces later during parsing.
func countLines(path string) int {
	data, err := os.ReadFile(path)
	if err != nil || len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}

// GroupIntoModules groups files strictly by immediate parent directory, one
// DirectoryModule per distinct parent in discovery order. Each file is
// wrapped in a minimal ModuleInfo with no AST fields populated.
func GroupIntoModules(files []model.FileInfo) []model.DirectoryModule {
	var order []string
	byDir := make(map[string][]model.ModuleInfo)

	for _, f := range files {
		dir := filepath.Dir(f.Path)
		if _, seen := byDir[dir]; !seen {
			order = append(order, dir)
		}
		byDir[dir] = append(byDir[dir], model.ModuleInfo{FileInfo: f})
	}

	modules := make([]model.DirectoryModule, 0, len(order))
	for _, dir := range order {
		modules = append(modules, model.DirectoryModule{
			Path:  dir,
			Files: byDir[dir],
		})
	}
	return modules
}

// DetectProjectType infers the overall project type from the discovered
// languages. JavaScript is treated as a subset of TypeScript and never
// reported standalone.
func DetectProjectType(files []model.FileInfo) model.ProjectType {
	var hasPython, hasTS bool
	for _, f := range files {
		switch f.Language {
		case model.LangPython:
			hasPython = true
		case model.LangTypeScript, model.LangJavaScript:
			hasTS = true
		}
	}

	switch {
	case hasPython && hasTS:
		return model.ProjectMixed
	case hasPython:
		return model.ProjectPython
	case hasTS:
		return model.ProjectTypeScript
	default:
		return model.ProjectUnknown
	}
}

// ScanProject runs the full L1 scan: discovery, grouping, and project type
// inference. Function and class totals are always zero here; AST extraction
// is a separate pass.
func (s *Scanner) ScanProject() (*model.ProjectScan, error) {
	root, err := filepath.Abs(s.root)
	if err != nil {
		return nil, errors.NewMapError(errors.ScanFailed, "failed to resolve project root", err, nil)
	}

	files, err := s.DiscoverFiles()
	if err != nil {
		return nil, err
	}

	modules := GroupIntoModules(files)

	s.logger.Info("scan complete", map[string]interface{}{
		"root":    root,
		"files":   len(files),
		"modules": len(modules),
	})

	return &model.ProjectScan{
		ProjectRoot: root,
		ProjectType: DetectProjectType(files),
		Modules:     modules,
		TotalFiles:  len(files),
		ScannedAt:   time.Now().UTC(),
	}, nil
}
