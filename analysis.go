// Word frequency analysis over the seven Harry Potter novels
package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AlecAivazis/survey/v2"
	"github.com/computerphysicslab/goPackages/goDebug"
	"github.com/spf13/viper"

	"github.com/mlombera94/harry-potter-text-analysis-part1/cachelib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/chartlib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/corpuslib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/entitylib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/freqlib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/loglib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/reportlib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/stopwordlib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/stringlib"
	"github.com/mlombera94/harry-potter-text-analysis-part1/tokenlib"
)

/******************************************************************************/
/******************************************************************************/
/*********************** CONFIG ***********************************************/
/******************************************************************************/
/******************************************************************************/

var Log = loglib.New()

var dataDir, outputDir, logsDir, cachePath string
var bookNames []string
var bookTitles map[string]string
var extraStopwords, stopwordsFile string
var topWords int
var defaultSeed int64
var cloudWidth, cloudHeight, cloudMaxWords int
var cloudRotationRatio float64
var chartWidth, chartHeight, chartColumns int
var baselinePath string
var baselineContrast float64
var entitiesOn, stemmingOn, checkLanguage, debugMode bool
var logLevel string

// the seven novels, reading order
var defaultBooks = []string{
	"philosophers_stone",
	"chamber_of_secrets",
	"prisoner_of_azkaban",
	"goblet_of_fire",
	"order_of_the_phoenix",
	"half_blood_prince",
	"deathly_hallows",
}

var defaultTitles = map[string]string{
	"philosophers_stone":   "The Philosopher's Stone",
	"chamber_of_secrets":   "The Chamber of Secrets",
	"prisoner_of_azkaban":  "The Prisoner of Azkaban",
	"goblet_of_fire":       "The Goblet of Fire",
	"order_of_the_phoenix": "The Order of the Phoenix",
	"half_blood_prince":    "The Half-Blood Prince",
	"deathly_hallows":      "The Deathly Hallows",
}

func yamlInit() {
	viper.SetConfigName("analysis") // name of config file (without extension)
	viper.AddConfigPath(".")        // look for config in the working directory

	viper.SetDefault("dataDir", "./data")
	viper.SetDefault("outputDir", "./output")
	viper.SetDefault("logsDir", "./logs")
	viper.SetDefault("cachePath", "./cache/tokensPersistent.dat")
	viper.SetDefault("books", defaultBooks)
	viper.SetDefault("bookTitles", defaultTitles)
	viper.SetDefault("topWords", 15)
	viper.SetDefault("seed", 1234)
	viper.SetDefault("wordcloud.width", 1600)
	viper.SetDefault("wordcloud.height", 1000)
	viper.SetDefault("wordcloud.maxWords", 100)
	viper.SetDefault("wordcloud.rotationRatio", 0.3)
	viper.SetDefault("charts.width", 1024)
	viper.SetDefault("charts.height", 512)
	viper.SetDefault("charts.columns", 2)
	viper.SetDefault("baselineContrast", 1.0)
	viper.SetDefault("entities", true)
	viper.SetDefault("stemming", false)
	viper.SetDefault("checkLanguage", true)
	viper.SetDefault("debug", false)
	viper.SetDefault("logLevel", "info")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			Log.Warn("no analysis.yaml in the working directory, running on defaults")
		} else {
			Log.Fatal("config: %v", err)
		}
	}

	dataDir = viper.GetString("dataDir")
	outputDir = viper.GetString("outputDir")
	logsDir = viper.GetString("logsDir")
	cachePath = viper.GetString("cachePath")
	bookNames = viper.GetStringSlice("books")
	bookTitles = viper.GetStringMapString("bookTitles")
	extraStopwords = stringlib.RmNewLines(viper.GetString("extraStopwords"))
	stopwordsFile = viper.GetString("stopwordsFile")
	topWords = viper.GetInt("topWords")
	defaultSeed = viper.GetInt64("seed")
	cloudWidth = viper.GetInt("wordcloud.width")
	cloudHeight = viper.GetInt("wordcloud.height")
	cloudMaxWords = viper.GetInt("wordcloud.maxWords")
	cloudRotationRatio = viper.GetFloat64("wordcloud.rotationRatio")
	chartWidth = viper.GetInt("charts.width")
	chartHeight = viper.GetInt("charts.height")
	chartColumns = viper.GetInt("charts.columns")
	baselinePath = viper.GetString("baselinePath")
	baselineContrast = viper.GetFloat64("baselineContrast")
	entitiesOn = viper.GetBool("entities")
	stemmingOn = viper.GetBool("stemming")
	checkLanguage = viper.GetBool("checkLanguage")
	debugMode = viper.GetBool("debug")
	logLevel = viper.GetString("logLevel")
}

// stopSet builds the effective stop-word set from config
func stopSet() stopwordlib.Set {
	if stopwordsFile != "" {
		set, err := stopwordlib.FromFile(stopwordsFile)
		if err != nil {
			Log.Fatal("stop words: %v", err)
		}
		return set
	}

	set := stopwordlib.Default()
	if extraStopwords != "" {
		set = set.Merge(stopwordlib.FromPipes(extraStopwords))
	}
	return set
}

/***************************************************************************************************************
****************************************************************************************************************
* PIPELINE *****************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

// analysis holds everything the commands draw from, computed once per run
type analysis struct {
	corpus    corpuslib.Corpus
	tokens    []tokenlib.Token
	byBook    map[string]freqlib.Table
	byChapter map[string]map[int]freqlib.Table
	unified   freqlib.Table
	stop      stopwordlib.Set
}

func newAnalysis() *analysis {
	loader := corpuslib.Loader{DataDir: dataDir, Titles: bookTitles, CheckLanguage: checkLanguage, Log: Log}
	corpus, err := loader.Load(bookNames)
	if err != nil {
		Log.Fatal("corpus: %v", err)
	}

	tokens := tokenizeCorpus(corpus)

	byBook := freqlib.ByBook(tokens)
	tables := make([]freqlib.Table, 0, len(corpus.Books))
	for _, b := range corpus.Books {
		tables = append(tables, byBook[b.Name])
	}

	a := &analysis{
		corpus:    corpus,
		tokens:    tokens,
		byBook:    byBook,
		byChapter: freqlib.ByChapter(tokens),
		unified:   freqlib.Merge(tables...),
		stop:      stopSet(),
	}

	if debugMode {
		goDebug.Print("unified top 20", a.unified.TopN(20))
	}
	return a
}

// tokenizeCorpus tokenizes every book, going through the persistent cache.
// Raw tokens are cached, stemming applies on the way out so toggling it never
// serves stale streams.
func tokenizeCorpus(corpus corpuslib.Corpus) []tokenlib.Token {
	tokenCache := cachelib.Open(cachePath)

	var tokens []tokenlib.Token
	for _, b := range corpus.Books {
		fingerprint := cachelib.Fingerprint(b.Chapters)
		bookTokens, found := tokenCache.Tokens(b.Name, fingerprint)
		if found {
			Log.Info("%s: %d tokens [CACHE]", b.Name, len(bookTokens))
		} else {
			bookTokens = tokenlib.FromBook(b)
			if err := tokenCache.Put(b.Name, fingerprint, bookTokens); err != nil {
				Log.Warn("token cache: %v", err)
			}
			Log.Info("%s: %d tokens [TOKENIZED]", b.Name, len(bookTokens))
		}
		tokens = append(tokens, bookTokens...)
	}

	if stemmingOn {
		tokens = tokenlib.StemTokens(tokens)
	}
	return tokens
}

// filteredByBook returns the per-book tables w/o stop words
func (a *analysis) filteredByBook() map[string]freqlib.Table {
	r := map[string]freqlib.Table{}
	for name, t := range a.byBook {
		r[name] = t.Without(a.stop)
	}
	return r
}

func (a *analysis) filteredUnified() freqlib.Table {
	return a.unified.Without(a.stop)
}

/***************************************************************************************************************
****************************************************************************************************************
* COMMANDS *****************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

func runReport(a *analysis) error {
	fmt.Println("\n* Word totals per book ...")
	reportlib.TotalsTable(os.Stdout, a.corpus, a.byBook)

	filtered := a.filteredByBook()
	fmt.Printf("\n* Top %d words per book, stop words removed ...\n", topWords)
	reportlib.TopWordsTable(os.Stdout, a.corpus, filtered, topWords)

	if err := reportlib.WriteTotalsCSV(filepath.Join(outputDir, "totals.csv"), a.corpus, a.byBook); err != nil {
		return err
	}
	if err := reportlib.WriteChapterTotalsCSV(filepath.Join(outputDir, "chapterTotals.csv"), a.corpus, a.byChapter); err != nil {
		return err
	}
	if err := reportlib.WriteTopWordsCSV(filepath.Join(outputDir, "topWords.csv"), a.corpus, filtered, topWords); err != nil {
		return err
	}
	if err := reportlib.WriteJSON(filepath.Join(outputDir, "bookFrequencies.json"), filtered); err != nil {
		return err
	}

	// Saving corpus frequencies in format all.num from British National Corpus
	if err := reportlib.WriteFreqList(filepath.Join(outputDir, "corpusFrequencies.txt"), a.unified); err != nil {
		return err
	}

	if baselinePath != "" {
		base, err := freqlib.LoadBaseline(baselinePath)
		if err != nil {
			return err
		}
		distinctive := freqlib.Contrast(a.unified, base, baselineContrast)
		fmt.Printf("\n* Top %d corpus-specific words, english baseline subtracted ...\n", topWords)
		reportlib.WordsTable(os.Stdout, "Word", distinctive.TopN(topWords))
		if err := reportlib.WriteFreqList(filepath.Join(outputDir, "corpusNoEngFrequencies.txt"), distinctive); err != nil {
			return err
		}
	}

	Log.Info("reports written to %s", outputDir)
	return nil
}

func runCharts(a *analysis) error {
	totals := make([]freqlib.KV, 0, len(a.corpus.Books))
	for _, b := range a.corpus.Books {
		totals = append(totals, freqlib.KV{Key: b.Title, Value: a.byBook[b.Name].Total()})
	}
	opts := chartlib.BarOpts{Title: "Words per Book", Width: chartWidth, Height: chartHeight}
	if err := chartlib.BarChart(filepath.Join(outputDir, "totals.png"), totals, opts); err != nil {
		return err
	}

	opts.Title = fmt.Sprintf("Top %d Words across the Novels", topWords)
	if err := chartlib.BarChart(filepath.Join(outputDir, "topWords.png"), a.filteredUnified().TopN(topWords), opts); err != nil {
		return err
	}

	filtered := a.filteredByBook()
	panels := make([]chartlib.Panel, 0, len(a.corpus.Books))
	for _, b := range a.corpus.Books {
		panels = append(panels, chartlib.Panel{Title: b.Title, Entries: filtered[b.Name].TopN(topWords)})
	}
	if err := chartlib.FacetedBar(filepath.Join(outputDir, "topWordsFacets.png"), panels, chartlib.FacetOpts{Columns: chartColumns}); err != nil {
		return err
	}

	Log.Info("charts written to %s", outputDir)
	return nil
}

func runWordCloud(a *analysis, rng *rand.Rand, book string) error {
	entries := a.filteredUnified()
	name := "wordcloud.png"
	if book != "" {
		if _, ok := a.corpus.Book(book); !ok {
			return fmt.Errorf("unknown book %q", book)
		}
		entries = a.byBook[book].Without(a.stop)
		name = "wordcloud_" + book + ".png"
	}

	opts := chartlib.CloudOpts{
		Width:         cloudWidth,
		Height:        cloudHeight,
		MaxWords:      cloudMaxWords,
		RotationRatio: cloudRotationRatio,
	}
	path := filepath.Join(outputDir, name)
	if err := chartlib.WordCloud(path, entries.TopN(cloudMaxWords), opts, rng); err != nil {
		return err
	}

	Log.Info("word cloud written to %s", path)
	return nil
}

func runEntities(a *analysis) error {
	fmt.Println("\n* Extracting character mentions, the NER model takes a while ...")
	people, err := entitylib.PeopleByBook(entitylib.ProseExtractor{}, a.corpus)
	if err != nil {
		return err
	}

	reportlib.CharactersTable(os.Stdout, a.corpus, people, topWords)
	if err := reportlib.WriteJSON(filepath.Join(outputDir, "characters.json"), people); err != nil {
		return err
	}

	panels := make([]chartlib.Panel, 0, len(a.corpus.Books))
	for _, b := range a.corpus.Books {
		panels = append(panels, chartlib.Panel{Title: b.Title, Entries: people[b.Name].TopN(topWords)})
	}
	if err := chartlib.FacetedBar(filepath.Join(outputDir, "charactersFacets.png"), panels, chartlib.FacetOpts{Columns: chartColumns}); err != nil {
		return err
	}

	Log.Info("character mentions written to %s", outputDir)
	return nil
}

/***************************************************************************************************************
****************************************************************************************************************
* CLI **********************************************************************************************************
****************************************************************************************************************
****************************************************************************************************************/

var commands = []string{"report", "charts", "wordcloud", "entities", "all"}

// parseArgs reads "analysis [command] [seed]", empty command means interactive
func parseArgs() (string, int64) {
	seed := defaultSeed
	argsWithoutProg := os.Args[1:]
	if len(argsWithoutProg) == 0 {
		return "", seed
	}

	command := argsWithoutProg[0]
	if len(argsWithoutProg) > 1 {
		s, err := strconv.ParseInt(argsWithoutProg[1], 10, 64)
		if err != nil {
			Log.Fatal("seed %q is not an integer", argsWithoutProg[1])
		}
		seed = s
	}
	return command, seed
}

// interactiveCommand prompts for a command, and for word clouds also for the
// target book
func interactiveCommand() (string, string) {
	var command string
	prompt := &survey.Select{
		Message: "Choose an analysis:",
		Options: commands,
		Default: "report",
	}
	if err := survey.AskOne(prompt, &command); err != nil {
		Log.Fatal("prompt: %v", err)
	}

	var book string
	if command == "wordcloud" {
		options := append([]string{"whole corpus"}, bookNames...)
		var choice string
		bookPrompt := &survey.Select{
			Message: "Word cloud for:",
			Options: options,
			Default: "whole corpus",
		}
		if err := survey.AskOne(bookPrompt, &choice); err != nil {
			Log.Fatal("prompt: %v", err)
		}
		if choice != "whole corpus" {
			book = choice
		}
	}
	return command, book
}

func main() {
	fmt.Println("* Loading YAML config ...")
	yamlInit()

	Log.SetLevel(logLevel)
	if err := Log.LogToFile(logsDir, "analysis.log"); err != nil {
		Log.Warn("log file: %v", err)
	}

	for _, dir := range []string{outputDir, filepath.Dir(cachePath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			Log.Fatal("mkdir %s: %v", dir, err)
		}
	}

	command, seed := parseArgs()
	var book string
	if command == "" {
		command, book = interactiveCommand()
	}

	if debugMode {
		goDebug.Print("config", dataDir, outputDir, bookNames, topWords, seed)
	}

	fmt.Println("* Loading corpus ...")
	a := newAnalysis()

	rng := rand.New(rand.NewSource(seed))

	var err error
	switch command {
	case "report":
		err = runReport(a)
	case "charts":
		err = runCharts(a)
	case "wordcloud":
		err = runWordCloud(a, rng, book)
	case "entities":
		err = runEntities(a)
	case "all":
		err = runReport(a)
		if err == nil {
			err = runCharts(a)
		}
		if err == nil {
			err = runWordCloud(a, rng, "")
		}
		if err == nil && entitiesOn {
			err = runEntities(a)
		}
	default:
		Log.Fatal("unknown command %q, want one of %v", command, commands)
	}
	if err != nil {
		Log.Fatal("%s: %v", command, err)
	}

	fmt.Println("\n***** Done!!!")
}
