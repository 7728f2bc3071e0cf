package fsops

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/petasbytes/agentcli/internal/safety"
)

// Match is one search hit: a workspace-relative path, a 1-based line
// number, and the matching line's text.
type Match struct {
	Path string `json:"path"`
	Line int    `json:"line"`
	Text string `json:"text"`
}

// skipDirs are never descended into during a search walk.
var skipDirs = map[string]struct{}{".git": {}, ".agent": {}}

// maxScanLine guards bufio against pathological single-line files.
const maxScanLine = 1 << 20

// SearchFiles walks the sandbox subtree at relDir and returns up to limit
// matches of re, visiting only files whose root-relative slash path matches
// the doublestar glob (empty glob means every file). Binary-looking files
// (NUL in the first scanned line) are skipped.
func SearchFiles(relDir, glob string, re *regexp.Regexp, limit int) ([]Match, error) {
	readRoot, _, err := getRoots()
	if err != nil {
		return nil, err
	}

	if relDir == "" {
		relDir = "."
	}
	absDir, err := safety.ValidateRelPath(readRoot, relDir)
	if err != nil {
		return nil, err
	}

	var matches []Match
	walkErr := filepath.WalkDir(absDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if _, skip := skipDirs[d.Name()]; skip {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(readRoot, p)
		if err != nil {
			return err
		}
		relSlash := filepath.ToSlash(rel)
		if glob != "" {
			ok, err := doublestar.Match(glob, relSlash)
			if err != nil {
				return safety.ToolError{Code: "ERR_BAD_GLOB", Message: "invalid glob pattern: " + strconv.Quote(glob)}
			}
			if !ok {
				return nil
			}
		}
		fileMatches, err := scanFile(p, relSlash, re, limit-len(matches))
		if err != nil {
			// Unreadable files are skipped, not fatal to the search.
			return nil
		}
		matches = append(matches, fileMatches...)
		if len(matches) >= limit {
			return fs.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return matches, nil
}

func scanFile(absPath, relSlash string, re *regexp.Regexp, remaining int) ([]Match, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []Match
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxScanLine)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if lineNo == 1 && strings.ContainsRune(line, '\x00') {
			return nil, nil
		}
		if re.MatchString(line) {
			out = append(out, Match{Path: relSlash, Line: lineNo, Text: line})
			if len(out) >= remaining {
				break
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
