package reportlib

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlombera94/harry-potter-text-analysis-part1/corpuslib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/freqlib"
)

var testCorpus = corpuslib.Corpus{Books: []corpuslib.Book{
	{Name: "philosophers_stone", Title: "The Philosopher's Stone"},
	{Name: "chamber_of_secrets", Title: "The Chamber of Secrets"},
}}

var testByBook = map[string]freqlib.Table{
	"philosophers_stone": {"harry": 7, "wand": 3},
	"chamber_of_secrets": {"dobby": 5},
}

func TestTotalsTable(t *testing.T) {
	var buf bytes.Buffer
	TotalsTable(&buf, testCorpus, testByBook)
	out := buf.String()

	if !strings.Contains(out, "The Philosopher's Stone") {
		t.Errorf("table missing book title:\n%s", out)
	}
	if !strings.Contains(out, "10") {
		t.Errorf("table missing total 10:\n%s", out)
	}

	// corpus order preserved
	ps := strings.Index(out, "Philosopher")
	cos := strings.Index(out, "Chamber")
	if ps < 0 || cos < 0 || ps > cos {
		t.Errorf("books out of corpus order:\n%s", out)
	}
}

func TestTopWordsTable(t *testing.T) {
	var buf bytes.Buffer
	TopWordsTable(&buf, testCorpus, testByBook, 1)
	out := buf.String()

	if !strings.Contains(out, "harry") || !strings.Contains(out, "dobby") {
		t.Errorf("table missing top words:\n%s", out)
	}
	if strings.Contains(out, "wand") {
		t.Errorf("top-1 table should not contain the second word:\n%s", out)
	}
}

func TestWordsTable(t *testing.T) {
	var buf bytes.Buffer
	WordsTable(&buf, "Word", []freqlib.KV{{Key: "harry", Value: 7}, {Key: "wand", Value: 3}})
	out := buf.String()

	if !strings.Contains(out, "harry") || !strings.Contains(out, "wand") {
		t.Errorf("table missing words:\n%s", out)
	}
	if strings.Index(out, "harry") > strings.Index(out, "wand") {
		t.Errorf("ranked order lost:\n%s", out)
	}
}

func TestWriteTotalsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "totals.csv")
	if err := WriteTotalsCSV(path, testCorpus, testByBook); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	if lines[0] != "book\ttotal_words\tdistinct_words" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[1] != "philosophers_stone\t10\t2" {
		t.Errorf("row = %q", lines[1])
	}
	if lines[2] != "chamber_of_secrets\t5\t1" {
		t.Errorf("row = %q", lines[2])
	}
}

func TestWriteChapterTotalsCSV(t *testing.T) {
	byChapter := map[string]map[int]freqlib.Table{
		"philosophers_stone": {
			2: {"wand": 3},
			1: {"harry": 7},
		},
	}
	corpus := corpuslib.Corpus{Books: []corpuslib.Book{{Name: "philosophers_stone"}}}

	path := filepath.Join(t.TempDir(), "chapters.csv")
	if err := WriteChapterTotalsCSV(path, corpus, byChapter); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), lines)
	}
	// chapters in numeric order
	if !strings.HasPrefix(lines[1], "philosophers_stone\t1\t") {
		t.Errorf("first chapter row = %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], "philosophers_stone\t2\t") {
		t.Errorf("second chapter row = %q", lines[2])
	}
}

func TestWriteTopWordsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "top.csv")
	if err := WriteTopWordsCSV(path, testCorpus, testByBook, 2); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	want := []string{
		"book\trank\tword\tcount",
		"philosophers_stone\t1\tharry\t7",
		"philosophers_stone\t2\twand\t3",
		"chamber_of_secrets\t1\tdobby\t5",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	if err := WriteJSON(path, testByBook["philosophers_stone"]); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]int
	if err := json.Unmarshal(content, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded["harry"] != 7 {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestWriteFreqListRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frequencies.txt")
	table := freqlib.Table{"harry": 7, "wand": 3}
	if err := WriteFreqList(path, table); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "7 harry none 0\n3 wand none 0\n" {
		t.Errorf("freq list = %q", string(content))
	}

	// files written this way load back as a baseline
	base, err := freqlib.LoadBaseline(path)
	if err != nil {
		t.Fatal(err)
	}
	if base.Freq("harry") != 7 || base.Freq("wand") != 3 {
		t.Errorf("roundtrip = harry:%d wand:%d", base.Freq("harry"), base.Freq("wand"))
	}
}
