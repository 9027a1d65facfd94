// Package reportlib renders analysis results as terminal tables and writes
// them to CSV, JSON and frequency-list files.
package reportlib

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/mlombera94/harry-potter-text-analysis-part1/corpuslib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/freqlib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/iolib"
)

/***************************************************************************************************************
****************************************************************************************************************
* Terminal tables **********************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// TotalsTable prints one row per book w/ total and distinct word counts,
// corpus order preserved
func TotalsTable(w io.Writer, c corpuslib.Corpus, byBook map[string]freqlib.Table) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Book", "Total Words", "Distinct Words"})
	for _, b := range c.Books {
		t := byBook[b.Name]
		table.Append([]string{b.Title, strconv.Itoa(t.Total()), strconv.Itoa(t.Distinct())})
	}
	table.Render()
}

// TopWordsTable prints the top n words of every book, corpus order preserved
func TopWordsTable(w io.Writer, c corpuslib.Corpus, byBook map[string]freqlib.Table, n int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Book", "Word", "Count"})
	for _, b := range c.Books {
		for _, keyValue := range byBook[b.Name].TopN(n) {
			table.Append([]string{b.Title, keyValue.Key, strconv.Itoa(keyValue.Value)})
		}
	}
	table.Render()
}

// WordsTable prints one ranked word list, header names the word column
func WordsTable(w io.Writer, header string, entries []freqlib.KV) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Rank", header, "Count"})
	for i, keyValue := range entries {
		table.Append([]string{strconv.Itoa(i + 1), keyValue.Key, strconv.Itoa(keyValue.Value)})
	}
	table.Render()
}

// CharactersTable prints the top n character mentions of every book
func CharactersTable(w io.Writer, c corpuslib.Corpus, people map[string]freqlib.Table, n int) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Book", "Character", "Mentions"})
	for _, b := range c.Books {
		for _, keyValue := range people[b.Name].TopN(n) {
			table.Append([]string{b.Title, keyValue.Key, strconv.Itoa(keyValue.Value)})
		}
	}
	table.Render()
}

/***************************************************************************************************************
****************************************************************************************************************
* File dumps ***************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// writeCSV writes a tab-delimited file, header first
func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv %s: %w", path, err)
	}
	defer file.Close()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = '\t'
	if err := csvWriter.Write(header); err != nil {
		return fmt.Errorf("csv %s: %w", path, err)
	}
	for _, row := range rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("csv %s: %w", path, err)
		}
	}
	csvWriter.Flush()
	if err := csvWriter.Error(); err != nil {
		return fmt.Errorf("csv %s: %w", path, err)
	}
	return nil
}

// WriteTotalsCSV dumps per-book totals, corpus order preserved
func WriteTotalsCSV(path string, c corpuslib.Corpus, byBook map[string]freqlib.Table) error {
	rows := make([][]string, 0, len(c.Books))
	for _, b := range c.Books {
		t := byBook[b.Name]
		rows = append(rows, []string{b.Name, strconv.Itoa(t.Total()), strconv.Itoa(t.Distinct())})
	}
	return writeCSV(path, []string{"book", "total_words", "distinct_words"}, rows)
}

// WriteChapterTotalsCSV dumps per-chapter totals, chapters in reading order
func WriteChapterTotalsCSV(path string, c corpuslib.Corpus, byChapter map[string]map[int]freqlib.Table) error {
	var rows [][]string
	for _, b := range c.Books {
		chapters := byChapter[b.Name]
		nums := make([]int, 0, len(chapters))
		for n := range chapters {
			nums = append(nums, n)
		}
		sort.Ints(nums)
		for _, n := range nums {
			t := chapters[n]
			rows = append(rows, []string{b.Name, strconv.Itoa(n), strconv.Itoa(t.Total()), strconv.Itoa(t.Distinct())})
		}
	}
	return writeCSV(path, []string{"book", "chapter", "total_words", "distinct_words"}, rows)
}

// WriteTopWordsCSV dumps the ranked top n words per book
func WriteTopWordsCSV(path string, c corpuslib.Corpus, byBook map[string]freqlib.Table, n int) error {
	var rows [][]string
	for _, b := range c.Books {
		for rank, keyValue := range byBook[b.Name].TopN(n) {
			rows = append(rows, []string{b.Name, strconv.Itoa(rank + 1), keyValue.Key, strconv.Itoa(keyValue.Value)})
		}
	}
	return writeCSV(path, []string{"book", "rank", "word", "count"}, rows)
}

// WriteJSON dumps any value as indented JSON
func WriteJSON(path string, v interface{}) error {
	jdata, err := json.MarshalIndent(v, "", " ")
	if err != nil {
		return fmt.Errorf("json %s: %w", path, err)
	}
	if err := os.WriteFile(path, jdata, 0644); err != nil {
		return fmt.Errorf("json %s: %w", path, err)
	}
	return nil
}

// WriteFreqList dumps a table in the all.num corpus format, count word pos
// docs, most frequent first. Files written this way load back through
// freqlib.LoadBaseline.
func WriteFreqList(path string, t freqlib.Table) error {
	output := ""
	for _, keyValue := range t.Sorted() {
		output = output + fmt.Sprintf("%d %s %s %d\n", keyValue.Value, keyValue.Key, "none", 0)
	}
	return iolib.String2file(output, path)
}
