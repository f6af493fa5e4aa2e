// Package story holds the narrative text store. Story files are plain
// text split into blocks, each introduced by a "@@ key" line:
//
//	@@ foyer-intro
//	The door slams shut behind you.
//
// Missing keys resolve to a literal placeholder rather than an error;
// the engine only uses story text for display, never for control flow.
package story

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const marker = "@@"

// Store maps story keys to their text blocks.
type Store struct {
	blocks map[string]string
}

// Parse reads a story file from r.
func Parse(r io.Reader) (*Store, error) {
	blocks := map[string]string{}
	var key string
	var lines []string

	flush := func() {
		if key == "" {
			return
		}
		blocks[key] = strings.TrimSpace(strings.Join(lines, "\n"))
		lines = nil
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, marker) {
			flush()
			key = strings.TrimSpace(strings.TrimPrefix(line, marker))
			continue
		}
		if key != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan story text: %w", err)
	}
	flush()

	return &Store{blocks: blocks}, nil
}

// ParseFile reads a story file from disk.
func ParseFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open story file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Text returns the block for key, or a visible placeholder when the
// key is absent.
func (s *Store) Text(key string) string {
	if text, ok := s.blocks[key]; ok {
		return text
	}
	return fmt.Sprintf("[Story block %q not found.]", key)
}

// Has reports whether a block exists for key.
func (s *Store) Has(key string) bool {
	_, ok := s.blocks[key]
	return ok
}

// Len returns the number of parsed blocks.
func (s *Store) Len() int {
	return len(s.blocks)
}
