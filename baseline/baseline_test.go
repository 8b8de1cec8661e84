package baseline

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/minios-linux/keycheck/catalog"
	"github.com/minios-linux/keycheck/keyset"
	"github.com/minios-linux/keycheck/reconcile"
)

func report(required []string, defined map[string][]string, locales ...string) *reconcile.Report {
	cats := make(map[string]catalog.LocaleCatalog)
	for loc, keys := range defined {
		cats[loc] = catalog.LocaleCatalog{Locale: loc, Keys: keyset.New(keys...), Found: true}
	}
	return reconcile.Reconcile(keyset.New(required...), locales, cats)
}

func TestLoadNonExistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error for non-existent file: %v", err)
	}
	if b.Version != Version {
		t.Errorf("Version = %d, want %d", b.Version, Version)
	}
	if len(b.Missing) != 0 {
		t.Errorf("Missing not empty: %v", b.Missing)
	}
	if b.Path() != path {
		t.Errorf("Path() = %q, want %q", b.Path(), path)
	}
	if b.Summary() != "empty" {
		t.Errorf("Summary() = %q", b.Summary())
	}
}

func TestRecordSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	r := report([]string{"a", "b", "c"}, map[string][]string{
		"en": {"a", "b", "c"},
		"es": {"a"},
		"pl": {"b"},
	}, "en", "es", "pl")
	b.Record(r)

	if err := b.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("baseline not created: %v", err)
	}

	b2, err := Load(path)
	if err != nil {
		t.Fatalf("Load after save: %v", err)
	}
	locales, keys := b2.Stats()
	if locales != 2 || keys != 4 {
		t.Fatalf("Stats() = %d, %d; want 2, 4", locales, keys)
	}
	if _, ok := b2.Missing["en"]; ok {
		t.Error("complete locale recorded in baseline")
	}
	if got := b2.Summary(); got != "2 locales, 4 keys (es: 2, pl: 2)" {
		t.Errorf("Summary() = %q", got)
	}
	if gaps := b2.NewGaps(r); len(gaps) != 0 {
		t.Errorf("NewGaps right after Record = %v", gaps)
	}
}

func TestNewGapsAndResolved(t *testing.T) {
	b := &Baseline{
		Version: Version,
		Missing: map[string][]string{
			"es": {"a", "b"},
		},
	}

	r := report([]string{"a", "b", "c"}, map[string][]string{
		"es": {"b"},
		"pl": {"a", "b", "c"},
	}, "es", "pl", "de")

	want := map[string][]string{
		"es": {"c"},
		"de": {"a", "b", "c"},
	}
	if got := b.NewGaps(r); !reflect.DeepEqual(got, want) {
		t.Fatalf("NewGaps() = %#v, want %#v", got, want)
	}

	wantResolved := map[string][]string{"es": {"b"}}
	if got := b.Resolved(r); !reflect.DeepEqual(got, wantResolved) {
		t.Fatalf("Resolved() = %#v, want %#v", got, wantResolved)
	}
}

func TestLoadNormalizesAndRejectsFutureVersion(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "ok.yaml")
	if err := os.WriteFile(path, []byte("version: 1\nmissing:\n  es: [b, a, b]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	b, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(b.Missing["es"], []string{"a", "b"}) {
		t.Fatalf("Missing[es] = %#v", b.Missing["es"])
	}

	future := filepath.Join(dir, "future.yaml")
	if err := os.WriteFile(future, []byte("version: 9\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(future); err == nil {
		t.Fatal("Load accepted a newer baseline version")
	}

	broken := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(broken, []byte("missing: [unclosed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(broken); err == nil {
		t.Fatal("Load accepted invalid YAML")
	}
}

func TestSaveWithoutPath(t *testing.T) {
	b := &Baseline{Version: Version, Missing: map[string][]string{}}
	if err := b.Save(); err == nil {
		t.Fatal("Save without path succeeded")
	}
}
