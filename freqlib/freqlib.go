// Package freqlib builds word frequency tables over token streams and gives
// ordered views (full ranking, top-N) plus grouping by book and chapter.
package freqlib

import (
	"sort"

	"github.com/mlombera94/harry-potter-text-analysis-part1/stopwordlib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/tokenlib"
)

/***************************************************************************************************************
****************************************************************************************************************
* Frequency tables *********************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Table maps a word to its occurrence count
type Table map[string]int

// KV is one table entry in an ordered view
type KV struct {
	Key   string
	Value int
}

// Count tallies a plain word list
func Count(words []string) Table {
	t := Table{}
	for _, w := range words {
		t[w]++
	}
	return t
}

// FromTokens tallies every token regardless of grouping
func FromTokens(tokens []tokenlib.Token) Table {
	t := Table{}
	for _, tok := range tokens {
		t[tok.Word]++
	}
	return t
}

// ByBook groups token counts per book
func ByBook(tokens []tokenlib.Token) map[string]Table {
	r := map[string]Table{}
	for _, tok := range tokens {
		t, ok := r[tok.Book]
		if !ok {
			t = Table{}
			r[tok.Book] = t
		}
		t[tok.Word]++
	}
	return r
}

// ByChapter groups token counts per book and 1-based chapter
func ByChapter(tokens []tokenlib.Token) map[string]map[int]Table {
	r := map[string]map[int]Table{}
	for _, tok := range tokens {
		chapters, ok := r[tok.Book]
		if !ok {
			chapters = map[int]Table{}
			r[tok.Book] = chapters
		}
		t, ok := chapters[tok.Chapter]
		if !ok {
			t = Table{}
			chapters[tok.Chapter] = t
		}
		t[tok.Word]++
	}
	return r
}

// Merge folds the tables into a fresh one, inputs untouched
func Merge(tables ...Table) Table {
	r := Table{}
	for _, t := range tables {
		for w, n := range t {
			r[w] += n
		}
	}
	return r
}

// Without returns a copy of the table w/o the stop words
func (t Table) Without(stop stopwordlib.Set) Table {
	r := Table{}
	for w, n := range t {
		if stop.Has(w) {
			continue
		}
		r[w] = n
	}
	return r
}

// Total sums all counts
func (t Table) Total() int {
	total := 0
	for _, n := range t {
		total += n
	}
	return total
}

// Distinct returns the vocabulary size
func (t Table) Distinct() int {
	return len(t)
}

/***************************************************************************************************************
****************************************************************************************************************
* Ordered views ************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Sorted returns the entries by count descending. Equal counts order
// alphabetically so rankings are identical run to run.
func (t Table) Sorted() []KV {
	ss := make([]KV, 0, len(t))
	for k, v := range t {
		ss = append(ss, KV{k, v})
	}
	sort.Slice(ss, func(i, j int) bool {
		if ss[i].Value == ss[j].Value {
			return ss[i].Key < ss[j].Key
		}
		return ss[i].Value > ss[j].Value
	})
	return ss
}

// TopN returns the first n entries of Sorted. Tables w/ fewer than n words
// return what they have; n <= 0 returns nothing.
func (t Table) TopN(n int) []KV {
	if n <= 0 {
		return []KV{}
	}
	ss := t.Sorted()
	if len(ss) > n {
		ss = ss[:n]
	}
	return ss
}
