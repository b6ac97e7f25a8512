// Package faq answers clinic questions from a static knowledge base. It is
// wholly independent of the booking engine: nothing here touches slots or
// the ledger.
package faq

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Document is one flattened section of the clinic knowledge base.
type Document struct {
	Section string
	Content string
}

// Store holds the flattened clinic information and retrieves the sections
// most relevant to a question by keyword overlap.
type Store struct {
	docs []Document
}

func NewStore() *Store {
	return &Store{}
}

// LoadFile reads a clinic-info JSON file and flattens each top-level
// section into one searchable document.
func (s *Store) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read clinic info: %w", err)
	}
	return s.Load(raw)
}

func (s *Store) Load(raw []byte) error {
	var sections map[string]any
	if err := json.Unmarshal(raw, &sections); err != nil {
		return fmt.Errorf("parse clinic info: %w", err)
	}

	names := make([]string, 0, len(sections))
	for name := range sections {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s.docs = append(s.docs, Document{
			Section: name,
			Content: flatten(name, sections[name]),
		})
	}
	return nil
}

// Loaded reports whether any documents are available.
func (s *Store) Loaded() bool {
	return len(s.docs) > 0
}

// Search scores each document by how many query words it contains and
// returns the topK best matches. Documents with no overlap are dropped.
func (s *Store) Search(query string, topK int) []Document {
	words := strings.Fields(strings.ToLower(query))

	type scored struct {
		score int
		idx   int
	}
	var hits []scored
	for i, doc := range s.docs {
		content := strings.ToLower(doc.Content)
		score := 0
		for _, w := range words {
			if strings.Contains(content, strings.Trim(w, ".,?!")) {
				score++
			}
		}
		if score > 0 {
			hits = append(hits, scored{score: score, idx: i})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	if topK > len(hits) {
		topK = len(hits)
	}
	out := make([]Document, 0, topK)
	for _, h := range hits[:topK] {
		out = append(out, s.docs[h.idx])
	}
	return out
}

// Context renders the top matches as a single block suitable for composing
// an answer from. Empty when nothing matches.
func (s *Store) Context(query string, topK int) string {
	docs := s.Search(query, topK)
	if len(docs) == 0 {
		return ""
	}
	parts := []string{"Relevant Clinic Information:"}
	for _, doc := range docs {
		parts = append(parts, "- "+doc.Content)
	}
	return strings.Join(parts, "\n")
}

// Answer returns the best-matching section's content, or empty when the
// question finds nothing in the knowledge base.
func (s *Store) Answer(question string) string {
	docs := s.Search(question, 1)
	if len(docs) == 0 {
		return ""
	}
	return docs[0].Content
}

// flatten turns a JSON section into readable text, one "Key: value" line
// per field, nested maps inlined and lists comma-joined.
func flatten(name string, v any) string {
	parts := []string{"Section: " + titleCase(name)}
	parts = append(parts, flattenValue(v)...)
	return strings.Join(parts, "\n")
}

func flattenValue(v any) []string {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			switch inner := val[k].(type) {
			case map[string]any:
				parts = append(parts, titleCase(k)+":")
				for _, line := range flattenValue(inner) {
					parts = append(parts, "  "+line)
				}
			case []any:
				parts = append(parts, titleCase(k)+": "+joinList(inner))
			default:
				parts = append(parts, fmt.Sprintf("%s: %v", titleCase(k), inner))
			}
		}
		return parts
	case []any:
		return []string{joinList(val)}
	default:
		return []string{fmt.Sprintf("%v", val)}
	}
}

func joinList(items []any) string {
	strs := make([]string, 0, len(items))
	for _, item := range items {
		strs = append(strs, fmt.Sprintf("%v", item))
	}
	return strings.Join(strs, ", ")
}

func titleCase(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
