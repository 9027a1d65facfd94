package cachelib

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/mlombera94/harry-potter-text-analysis-part1/tokenlib"
)

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]string{"Harry saw Harry.", "Hagrid knocked."})
	b := Fingerprint([]string{"Harry saw Harry.", "Hagrid knocked."})
	if a != b {
		t.Error("same chapters should fingerprint identically")
	}

	c := Fingerprint([]string{"Harry saw Harry.", "Hagrid knocked twice."})
	if a == c {
		t.Error("different text should change the fingerprint")
	}

	// chapter boundaries count
	d := Fingerprint([]string{"ab"})
	e := Fingerprint([]string{"a", "b"})
	if d == e {
		t.Error("different chapter splits should change the fingerprint")
	}
}

func TestCacheRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.dat")
	tokens := []tokenlib.Token{
		{Book: "philosophers_stone", Chapter: 1, Word: "harry"},
		{Book: "philosophers_stone", Chapter: 2, Word: "wand"},
	}
	fp := Fingerprint([]string{"some chapter text"})

	c := Open(path)
	if _, found := c.Tokens("philosophers_stone", fp); found {
		t.Fatal("fresh cache should miss")
	}
	if err := c.Put("philosophers_stone", fp, tokens); err != nil {
		t.Fatal(err)
	}

	// same process hit
	got, found := c.Tokens("philosophers_stone", fp)
	if !found || !reflect.DeepEqual(got, tokens) {
		t.Errorf("Tokens = %v, %v", got, found)
	}

	// reopened from disk hit
	reopened := Open(path)
	got, found = reopened.Tokens("philosophers_stone", fp)
	if !found {
		t.Fatal("reopened cache should hit")
	}
	if !reflect.DeepEqual(got, tokens) {
		t.Errorf("reopened Tokens = %v, want %v", got, tokens)
	}
}

func TestCacheFingerprintMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.dat")
	tokens := []tokenlib.Token{{Book: "philosophers_stone", Chapter: 1, Word: "harry"}}

	c := Open(path)
	if err := c.Put("philosophers_stone", 111, tokens); err != nil {
		t.Fatal(err)
	}

	if _, found := c.Tokens("philosophers_stone", 222); found {
		t.Error("changed fingerprint should miss")
	}
	if _, found := c.Tokens("chamber_of_secrets", 111); found {
		t.Error("unknown book should miss")
	}
}

func TestCacheCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.dat")
	if err := os.WriteFile(path, []byte("not a gob stream"), 0644); err != nil {
		t.Fatal(err)
	}

	c := Open(path)
	if _, found := c.Tokens("philosophers_stone", 1); found {
		t.Error("corrupt cache file should open empty")
	}
}

func TestCacheBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.dat")
	c := Open(path)

	for i := 0; i < 10; i++ {
		if err := c.Save(); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := os.Stat(path + ".backup"); err != nil {
		t.Errorf("10th save should leave a backup: %v", err)
	}
}
