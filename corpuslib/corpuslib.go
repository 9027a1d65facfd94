// Package corpuslib loads the novel corpus the analysis runs over. Each book
// is a directory of chapter files under the data dir; the config names the
// books in reading order.
package corpuslib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chrisport/go-lang-detector/langdet"
	"github.com/chrisport/go-lang-detector/langdet/langdetdef"
	"jaytaylor.com/html2text"

	"github.com/mlombera94/harry-potter-text-analysis-part1/iolib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/loglib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/stringlib"
)

/***************************************************************************************************************
****************************************************************************************************************
* Corpus model *************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Book is an ordered sequence of raw chapter texts. Immutable once loaded.
type Book struct {
	Name     string // directory name, the grouping key everywhere downstream
	Title    string // display title for charts and tables
	Chapters []string
}

// Corpus is the ordered collection of books under analysis
type Corpus struct {
	Books []Book
}

// Book returns the named book and whether it exists
func (c Corpus) Book(name string) (Book, bool) {
	for _, b := range c.Books {
		if b.Name == name {
			return b, true
		}
	}
	return Book{}, false
}

// Names returns the book names in corpus order
func (c Corpus) Names() []string {
	names := make([]string, len(c.Books))
	for i, b := range c.Books {
		names[i] = b.Name
	}
	return names
}

/***************************************************************************************************************
****************************************************************************************************************
* Loading ******************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// Loader reads books from DataDir. Titles maps book name to display title,
// missing entries fall back to the name. When CheckLanguage is set, each book
// is sniffed w/ the language detector and a non-english result logs a warning.
type Loader struct {
	DataDir       string
	Titles        map[string]string
	CheckLanguage bool
	Log           *loglib.Logger
}

// Load reads the named books in the given order. A missing book directory,
// an unreadable chapter or a book w/o chapter files fails the whole load.
func (l Loader) Load(names []string) (Corpus, error) {
	var detector *langdet.Detector
	if l.CheckLanguage {
		d := langdetdef.NewWithDefaultLanguages()
		detector = &d
	}

	corpus := Corpus{Books: make([]Book, 0, len(names))}
	for _, name := range names {
		book, err := l.loadBook(name)
		if err != nil {
			return Corpus{}, err
		}
		if detector != nil {
			l.checkLanguage(detector, book)
		}
		corpus.Books = append(corpus.Books, book)
	}
	return corpus, nil
}

func (l Loader) loadBook(name string) (Book, error) {
	dir := filepath.Join(l.DataDir, name)
	if !iolib.DirExists(dir) {
		return Book{}, fmt.Errorf("book %s: directory %s not found", name, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Book{}, fmt.Errorf("book %s: %w", name, err)
	}

	// ReadDir sorts by filename, which is the chapter order
	var chapters []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".txt" && ext != ".html" {
			continue
		}
		text, err := readChapter(filepath.Join(dir, e.Name()))
		if err != nil {
			return Book{}, fmt.Errorf("book %s chapter %s: %w", name, e.Name(), err)
		}
		chapters = append(chapters, text)
	}
	if len(chapters) == 0 {
		return Book{}, fmt.Errorf("book %s: no chapter files under %s", name, dir)
	}

	title := l.Titles[name]
	if title == "" {
		title = name
	}
	return Book{Name: name, Title: title, Chapters: chapters}, nil
}

// readChapter loads one chapter file; .html files are converted to plain text
func readChapter(path string) (string, error) {
	content, err := iolib.File2string(path)
	if err != nil {
		return "", err
	}

	if strings.ToLower(filepath.Ext(path)) == ".html" {
		content, err = html2text.FromString(content, html2text.Options{PrettyTables: false})
		if err != nil {
			return "", fmt.Errorf("html conversion: %w", err)
		}
	}

	return stringlib.NormalizeQuotes(stringlib.StripBOM(content)), nil
}

// checkLanguage sniffs the first non-empty chapter; best effort only
func (l Loader) checkLanguage(detector *langdet.Detector, b Book) {
	var sample string
	for _, ch := range b.Chapters {
		if strings.TrimSpace(ch) != "" {
			sample = ch
			break
		}
	}
	if sample == "" {
		return
	}
	if len(sample) > 2000 {
		sample = sample[:2000]
	}

	if lang := detector.GetClosestLanguage(sample); lang != "english" {
		if l.Log != nil {
			l.Log.Warn("book %s looks like %s, stop-word filtering assumes english", b.Name, lang)
		}
	}
}
