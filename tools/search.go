package tools

import (
	"bufio"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/scottsen/groqqy"
	"github.com/scottsen/groqqy/schema"
)

// maxSearchResults caps search output so a broad pattern cannot flood
// the conversation.
const maxSearchResults = 20

// SearchFiles returns a tool that finds files whose base name matches
// a glob pattern under a directory.
func SearchFiles() groqqy.Tool {
	return groqqy.NewToolFunc(
		"search_files",
		"Find files matching a pattern in a directory",
		schema.Object(map[string]*schema.Property{
			"pattern": schema.String("Glob pattern to match file names against, e.g. *.go"),
			"path":    schema.String("Directory to search in").Default("."),
		}, "pattern"),
		func(ctx context.Context, args map[string]any) (string, error) {
			pattern, _ := args["pattern"].(string)
			root := stringArg(args, "path", ".")

			var matches []string
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil // skip unreadable entries
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if d.IsDir() {
					return nil
				}
				ok, matchErr := filepath.Match(pattern, d.Name())
				if matchErr != nil {
					return matchErr
				}
				if ok {
					matches = append(matches, path)
					if len(matches) >= maxSearchResults {
						return fs.SkipAll
					}
				}
				return nil
			})
			if err != nil {
				return fmt.Sprintf("Error searching files: %v", err), nil
			}
			if len(matches) == 0 {
				return "No files found", nil
			}
			return strings.Join(matches, "\n"), nil
		},
	)
}

// SearchContent returns a tool that searches file contents for a
// substring, reporting path, line number and line text per match.
func SearchContent() groqqy.Tool {
	return groqqy.NewToolFunc(
		"search_content",
		"Search for text content in files",
		schema.Object(map[string]*schema.Property{
			"query": schema.String("Text to search for"),
			"path":  schema.String("Directory to search in").Default("."),
		}, "query"),
		func(ctx context.Context, args map[string]any) (string, error) {
			query, _ := args["query"].(string)
			root := stringArg(args, "path", ".")

			var matches []string
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return nil
				}
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if d.IsDir() {
					return nil
				}
				for _, m := range grepFile(path, query, maxSearchResults-len(matches)) {
					matches = append(matches, m)
				}
				if len(matches) >= maxSearchResults {
					return fs.SkipAll
				}
				return nil
			})
			if err != nil {
				return fmt.Sprintf("Error searching content: %v", err), nil
			}
			if len(matches) == 0 {
				return "No matches found", nil
			}
			return strings.Join(matches, "\n"), nil
		},
	)
}

// grepFile scans one file for lines containing query, up to limit
// matches. Unreadable files are silently skipped.
func grepFile(path, query string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var out []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		if strings.Contains(scanner.Text(), query) {
			out = append(out, fmt.Sprintf("%s:%d:%s", path, line, scanner.Text()))
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// stringArg reads an optional string argument with a fallback.
func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}
