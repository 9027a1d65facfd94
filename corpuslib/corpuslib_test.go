package corpuslib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeChapter(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadChapterOrder(t *testing.T) {
	dataDir := t.TempDir()
	bookDir := filepath.Join(dataDir, "philosophers_stone")
	if err := os.MkdirAll(bookDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeChapter(t, bookDir, "02.txt", "second chapter")
	writeChapter(t, bookDir, "01.txt", "first chapter")
	writeChapter(t, bookDir, "10.txt", "tenth chapter")
	writeChapter(t, bookDir, "notes.md", "ignored")

	loader := Loader{DataDir: dataDir}
	corpus, err := loader.Load([]string{"philosophers_stone"})
	if err != nil {
		t.Fatal(err)
	}
	if len(corpus.Books) != 1 {
		t.Fatalf("got %d books, want 1", len(corpus.Books))
	}

	b := corpus.Books[0]
	want := []string{"first chapter", "second chapter", "tenth chapter"}
	if len(b.Chapters) != len(want) {
		t.Fatalf("got %d chapters, want %d", len(b.Chapters), len(want))
	}
	for i, ch := range want {
		if b.Chapters[i] != ch {
			t.Errorf("chapter %d = %q, want %q", i, b.Chapters[i], ch)
		}
	}
}

func TestLoadHTMLChapter(t *testing.T) {
	dataDir := t.TempDir()
	bookDir := filepath.Join(dataDir, "chamber_of_secrets")
	if err := os.MkdirAll(bookDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeChapter(t, bookDir, "01.html", "<html><body><p>Dobby has come to warn you.</p></body></html>")

	loader := Loader{DataDir: dataDir}
	corpus, err := loader.Load([]string{"chamber_of_secrets"})
	if err != nil {
		t.Fatal(err)
	}
	got := corpus.Books[0].Chapters[0]
	if !strings.Contains(got, "Dobby has come to warn you.") {
		t.Errorf("html chapter = %q, want plain text sentence", got)
	}
	if strings.Contains(got, "<p>") {
		t.Errorf("html chapter still contains markup: %q", got)
	}
}

func TestLoadNormalizesQuotes(t *testing.T) {
	dataDir := t.TempDir()
	bookDir := filepath.Join(dataDir, "prisoner_of_azkaban")
	if err := os.MkdirAll(bookDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeChapter(t, bookDir, "01.txt", "“I don’t go looking for trouble,” said Harry.")

	loader := Loader{DataDir: dataDir}
	corpus, err := loader.Load([]string{"prisoner_of_azkaban"})
	if err != nil {
		t.Fatal(err)
	}
	got := corpus.Books[0].Chapters[0]
	want := "\"I don't go looking for trouble,\" said Harry."
	if got != want {
		t.Errorf("chapter = %q, want %q", got, want)
	}
}

func TestLoadMissingBook(t *testing.T) {
	loader := Loader{DataDir: t.TempDir()}
	_, err := loader.Load([]string{"goblet_of_fire"})
	if err == nil {
		t.Fatal("expected error for missing book directory")
	}
	if !strings.Contains(err.Error(), "goblet_of_fire") {
		t.Errorf("error %q does not name the book", err)
	}
}

func TestLoadEmptyBook(t *testing.T) {
	dataDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dataDir, "order_of_the_phoenix"), 0755); err != nil {
		t.Fatal(err)
	}

	loader := Loader{DataDir: dataDir}
	_, err := loader.Load([]string{"order_of_the_phoenix"})
	if err == nil {
		t.Fatal("expected error for book w/o chapter files")
	}
}

func TestLoadTitles(t *testing.T) {
	dataDir := t.TempDir()
	for _, name := range []string{"philosophers_stone", "chamber_of_secrets"} {
		dir := filepath.Join(dataDir, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		writeChapter(t, dir, "01.txt", "some text")
	}

	loader := Loader{
		DataDir: dataDir,
		Titles:  map[string]string{"philosophers_stone": "The Philosopher's Stone"},
	}
	corpus, err := loader.Load([]string{"philosophers_stone", "chamber_of_secrets"})
	if err != nil {
		t.Fatal(err)
	}
	if corpus.Books[0].Title != "The Philosopher's Stone" {
		t.Errorf("title = %q, want mapped title", corpus.Books[0].Title)
	}
	if corpus.Books[1].Title != "chamber_of_secrets" {
		t.Errorf("title = %q, want fallback to name", corpus.Books[1].Title)
	}
}

func TestCorpusLookup(t *testing.T) {
	corpus := Corpus{Books: []Book{
		{Name: "philosophers_stone", Title: "PS"},
		{Name: "chamber_of_secrets", Title: "CoS"},
	}}

	b, ok := corpus.Book("chamber_of_secrets")
	if !ok || b.Title != "CoS" {
		t.Errorf("Book(chamber_of_secrets) = %+v, %v", b, ok)
	}
	if _, ok := corpus.Book("deathly_hallows"); ok {
		t.Error("Book(deathly_hallows) should not exist")
	}

	names := corpus.Names()
	if len(names) != 2 || names[0] != "philosophers_stone" || names[1] != "chamber_of_secrets" {
		t.Errorf("Names() = %v", names)
	}
}
