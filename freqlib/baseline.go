package freqlib

import (
	"bufio"
	"fmt"
	"os"
)

/***************************************************************************************************************
****************************************************************************************************************
* Baseline contrast ********************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Baseline holds reference English word frequencies in the British National
// Corpus all.num format: one "count word pos docs" line per word form,
// unlemmatized. Subtracting it from an observed table surfaces the vocabulary
// that is specific to the novels rather than to English at large.
type Baseline struct {
	counts map[string]int
}

// LoadBaseline parses an all.num file. The first entry of a word wins,
// later part-of-speech variants are ignored.
func LoadBaseline(path string) (Baseline, error) {
	file, err := os.Open(path)
	if err != nil {
		return Baseline{}, fmt.Errorf("baseline: %w", err)
	}
	defer file.Close()

	counts := make(map[string]int)
	var word, pos string
	var numTotal, numDocs int

	numLine := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		l := scanner.Text()
		numLine++
		if l == "" {
			continue
		}

		_, err := fmt.Sscanf(l, "%d %s %s %d", &numTotal, &word, &pos, &numDocs)
		if err != nil {
			return Baseline{}, fmt.Errorf("baseline: line %d: %w", numLine, err)
		}

		if counts[word] == 0 {
			counts[word] = numTotal
		}
	}
	if err := scanner.Err(); err != nil {
		return Baseline{}, fmt.Errorf("baseline: %w", err)
	}

	return Baseline{counts: counts}, nil
}

// Freq returns the baseline count of a word, 0 when unknown
func (b Baseline) Freq(word string) int {
	return b.counts[word]
}

// Len returns the baseline vocabulary size
func (b Baseline) Len() int {
	return len(b.counts)
}

// Contrast subtracts the scale-normalized baseline from the table, keeping
// only words whose count survives the subtraction. The scale anchors on the
// most frequent word the table and the baseline share, so observed counts and
// baseline counts become comparable. contrast multiplies the subtraction,
// 1.0 removes roughly the expected English share, higher values cut deeper.
// W/o any shared word the table is returned as is.
func Contrast(t Table, base Baseline, contrast float64) Table {
	r := Table{}

	var anchor string
	for _, keyValue := range t.Sorted() {
		if base.Freq(keyValue.Key) > 0 {
			anchor = keyValue.Key
			break
		}
	}
	if anchor == "" {
		for w, n := range t {
			r[w] = n
		}
		return r
	}

	scaleFactor := float64(1+base.Freq(anchor)) / float64(t[anchor])
	for w, n := range t {
		kept := n - int(contrast*float64(1+base.Freq(w))/scaleFactor)
		if kept > 0 {
			r[w] = kept
		}
	}
	return r
}
