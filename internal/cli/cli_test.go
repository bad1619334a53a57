package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTotal_Pretty(t *testing.T) {
	out, err := runRoot(t, "total", "--articles", "5", "--blogs", "3")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if !strings.Contains(out, "Total:      ₹52234.99") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestTotal_JSONWithCustomRates(t *testing.T) {
	out, err := runRoot(t, "total", "--articles", "2", "--blogs", "1",
		"--article-rate", "100", "--blog-rate", "0.5", "--format", "json")
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if got["totalPayout"] != "200.50" {
		t.Errorf("totalPayout = %v, want 200.50", got["totalPayout"])
	}
}

func TestTotal_ExportCSV(t *testing.T) {
	dir := t.TempDir()
	out, err := runRoot(t, "total", "--articles", "3", "--export", "csv", "--out", dir)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	path := filepath.Join(dir, "payout-report.csv")
	if !strings.Contains(out, path) {
		t.Errorf("expected report path in output:\n%s", out)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !strings.Contains(string(body), "15792.09") {
		t.Errorf("report missing article total:\n%s", body)
	}
}

func TestTotal_RejectsNegativeInputs(t *testing.T) {
	if _, err := runRoot(t, "total", "--articles", "-1"); err == nil {
		t.Error("expected error for negative count")
	}
	if _, err := runRoot(t, "total", "--blog-rate", "-5"); err == nil {
		t.Error("expected error for negative rate")
	}
	if _, err := runRoot(t, "total", "--export", "docx", "--out", t.TempDir()); err == nil {
		t.Error("expected error for unsupported export format")
	}
}

func TestAuthors_GroupsByAuthor(t *testing.T) {
	input := filepath.Join(t.TempDir(), "items.json")
	items := `[
		{"id": "1", "authorId": "A1", "kind": "news"},
		{"id": "2", "authorId": "B2", "kind": "blog"},
		{"id": "3", "authorId": "A1", "kind": "article"}
	]`
	if err := os.WriteFile(input, []byte(items), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runRoot(t, "authors", "--input", input)
	if err != nil {
		t.Fatalf("authors: %v", err)
	}
	for _, want := range []string{
		"- A1: 2 article(s), 0 blog(s) => ₹10528.06",
		"- B2: 0 article(s), 1 blog(s) => ₹8638.28",
		"Total:      ₹19166.34",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestAuthors_UnknownKind(t *testing.T) {
	input := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(input, []byte(`[{"id":"1","authorId":"A1","kind":"podcast"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := runRoot(t, "authors", "--input", input); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestAuthors_RequiresInput(t *testing.T) {
	if _, err := runRoot(t, "authors"); err == nil {
		t.Error("expected error without --input")
	}
}
