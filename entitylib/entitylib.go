// Package entitylib extracts named entities from chapter text. The analysis
// uses it to count character mentions per book.
package entitylib

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/mlombera94/harry-potter-text-analysis-part1/corpuslib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/freqlib"
)

// Entity is one named-entity occurrence w/ its NER label
type Entity struct {
	Text  string
	Label string
}

// Extractor turns raw text into entity occurrences
type Extractor interface {
	Entities(text string) ([]Entity, error)
}

// ProseExtractor implements Extractor w/ the prose NER model
type ProseExtractor struct{}

func (ProseExtractor) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("prose: %w", err)
	}

	var entities []Entity
	for _, ent := range doc.Entities() {
		entities = append(entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	return entities, nil
}

// People counts PERSON-labeled mentions across a book's chapters. Mention
// text is lowercased so casing variants aggregate together, multi-word names
// stay whole.
func People(ex Extractor, b corpuslib.Book) (freqlib.Table, error) {
	t := freqlib.Table{}
	for ci, chapter := range b.Chapters {
		entities, err := ex.Entities(chapter)
		if err != nil {
			return nil, fmt.Errorf("book %s chapter %d: %w", b.Name, ci+1, err)
		}
		for _, ent := range entities {
			if ent.Label != "PERSON" {
				continue
			}
			t[strings.ToLower(ent.Text)]++
		}
	}
	return t, nil
}

// PeopleByBook runs People over every book, keyed by book name
func PeopleByBook(ex Extractor, c corpuslib.Corpus) (map[string]freqlib.Table, error) {
	r := map[string]freqlib.Table{}
	for _, b := range c.Books {
		t, err := People(ex, b)
		if err != nil {
			return nil, err
		}
		r[b.Name] = t
	}
	return r, nil
}
