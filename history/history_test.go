package history

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hazyhaar/a11ycheck/a11y"
	"github.com/hazyhaar/a11ycheck/dbopen"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return &Store{DB: dbopen.OpenMemory(t, dbopen.WithSchema(Schema))}
}

var sample = a11y.Report{
	{Rule: "html_lang", Passed: true, Clause: "2.4.2 Page Titled", Message: "Page language is set"},
	{Rule: "img_alt", Passed: false, Clause: "1.1.1 Non-text Content", Message: "2 images without ALT"},
	{Rule: "contrast", Passed: true, Clause: "1.4.3 Contrast (Minimum)", Message: "OK"},
}

func TestRecordAndResults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := &Run{Subject: "https://example.com", Language: "en"}
	if err := s.Record(ctx, run, sample); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if !strings.HasPrefix(run.ID, "run_") {
		t.Errorf("ID = %q, want run_ prefix", run.ID)
	}
	if run.CreatedAt == 0 {
		t.Error("CreatedAt not set")
	}
	if run.Passed != 2 || run.Failed != 1 {
		t.Errorf("tally = %d/%d, want 2/1", run.Passed, run.Failed)
	}
	if run.Source != SourceURL {
		t.Errorf("Source = %q, want default url", run.Source)
	}

	got, err := s.Results(ctx, run.ID)
	if err != nil {
		t.Fatalf("Results: %v", err)
	}
	if len(got) != len(sample) {
		t.Fatalf("got %d results, want %d", len(got), len(sample))
	}
	for i := range sample {
		if got[i] != sample[i] {
			t.Errorf("result %d = %+v, want %+v", i, got[i], sample[i])
		}
	}
}

func TestGet(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := &Run{Subject: "<local file>", Source: SourceFile, Language: "he"}
	if err := s.Record(ctx, run, sample); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, run.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || *got != *run {
		t.Fatalf("Get = %+v, want %+v", got, run)
	}

	missing, err := s.Get(ctx, "run_missing")
	if err != nil || missing != nil {
		t.Fatalf("Get missing = %v, %v; want nil, nil", missing, err)
	}
}

func TestRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i, subject := range []string{"a", "b", "c"} {
		run := &Run{Subject: subject, Language: "en", CreatedAt: int64(1000 + i)}
		if err := s.Record(ctx, run, sample); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Subject != "c" || runs[1].Subject != "b" {
		t.Errorf("order = %s,%s; want c,b", runs[0].Subject, runs[1].Subject)
	}

	all, err := s.Recent(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Errorf("default limit returned %d runs, want 3", len(all))
	}
}

func TestRecord_NetworkSentinel(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	report := a11y.Report{{Rule: a11y.NetworkRuleID, Passed: false, Clause: "Network", Message: "dial tcp: refused"}}
	run := &Run{Subject: "https://down.example"}
	if err := s.Record(ctx, run, report); err != nil {
		t.Fatal(err)
	}
	got, err := s.Results(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Failed() {
		t.Errorf("reloaded report is not the network sentinel: %+v", got)
	}
}

func TestDeleteCascades(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	run := &Run{Subject: "x"}
	if err := s.Record(ctx, run, sample); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	got, err := s.Results(ctx, run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("results survived delete: %d", len(got))
	}
}

func TestDelete_FileLeavesNoOrphans(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx := context.Background()

	// Pin a connection so Delete runs on a different pooled one.
	held, err := s.DB.Conn(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer held.Close()

	run := &Run{Subject: "file"}
	if err := s.Record(ctx, run, sample); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, run.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	var orphans int
	if err := held.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_results`).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("%d audit_results rows left after delete", orphans)
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "history.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	if err := s.Record(context.Background(), &Run{Subject: "y"}, sample); err != nil {
		t.Fatalf("Record: %v", err)
	}
}
