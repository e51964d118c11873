package game

import (
	"os"
	"testing"

	"github.com/gocarina/gocsv"
)

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := gocsv.UnmarshalFile(f, out); err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
}
