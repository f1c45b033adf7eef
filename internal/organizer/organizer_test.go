package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"filesort/internal/faults"
	"filesort/internal/formats"
	"filesort/internal/mover"
	"filesort/internal/organizer"
	"filesort/internal/testsupport"
)

func newOrganizer(t *testing.T, table *formats.Table) (*organizer.Organizer, *testsupport.Reporter) {
	t.Helper()
	rec := &testsupport.Reporter{}
	return organizer.New(table, mover.New(rec, mover.WithJobs(4)), nil), rec
}

func imagesAndText() *formats.Table {
	return formats.MustNew([]formats.Category{
		{Name: "Images", Extensions: []string{"JPG"}},
		{Name: "Text", Extensions: []string{"TXT"}},
	})
}

func TestByDefaultsSortsEligibleFiles(t *testing.T) {
	src := t.TempDir()
	out := filepath.Join(t.TempDir(), "out")
	testsupport.WriteFiles(t, src, "a.jpg", "b.txt", ".hidden")
	if err := os.Mkdir(filepath.Join(src, "notes"), 0o755); err != nil {
		t.Fatalf("mkdir notes: %v", err)
	}

	org, rec := newOrganizer(t, imagesAndText())
	pending, err := org.ByDefaults(context.Background(), []string{"a.jpg", "b.txt", ".hidden", "notes"}, src, out, false)
	if err != nil {
		t.Fatalf("ByDefaults: %v", err)
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending moves, got %d", len(pending))
	}
	outcomes := organizer.WaitAll(pending)
	if outcomes[0].File != "a.jpg" || outcomes[1].File != "b.txt" {
		t.Fatalf("outcomes out of input order: %+v", outcomes)
	}

	testsupport.AssertExists(t, filepath.Join(out, "Images", "a.jpg"))
	testsupport.AssertExists(t, filepath.Join(out, "Text", "b.txt"))
	testsupport.AssertExists(t, filepath.Join(src, ".hidden"))
	testsupport.AssertExists(t, filepath.Join(src, "notes"))
	testsupport.AssertMissing(t, filepath.Join(src, "a.jpg"))
	if warns := rec.Warns(); len(warns) != 0 {
		t.Fatalf("unexpected warnings %v", warns)
	}
}

func TestByDefaultsUsesMiscellaneousAndIgnoresCase(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteFiles(t, src, "readme", "blob.xyz", "PHOTO.Jpg")

	org, _ := newOrganizer(t, imagesAndText())
	pending, err := org.ByDefaults(context.Background(), []string{"readme", "blob.xyz", "PHOTO.Jpg"}, src, out, false)
	if err != nil {
		t.Fatalf("ByDefaults: %v", err)
	}
	var categories []string
	for _, o := range organizer.WaitAll(pending) {
		if o.Failed() {
			t.Fatalf("unexpected failure for %s: %v", o.File, o.Err)
		}
		categories = append(categories, o.Category)
	}
	want := []string{formats.Miscellaneous, formats.Miscellaneous, "Images"}
	if !reflect.DeepEqual(categories, want) {
		t.Fatalf("categories = %v, want %v", categories, want)
	}
	testsupport.AssertExists(t, filepath.Join(out, "Images", "PHOTO.Jpg"))
	testsupport.AssertExists(t, filepath.Join(out, formats.Miscellaneous, "readme"))
}

func TestBySpecificFileTypesIsCaseSensitive(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteFiles(t, src, "x.png", "x.PNG", "y.txt")

	org, _ := newOrganizer(t, nil)
	pending, err := org.BySpecificFileTypes(context.Background(), []string{"png"}, "Pics",
		[]string{"x.png", "x.PNG", "y.txt"}, src, out, false)
	if err != nil {
		t.Fatalf("BySpecificFileTypes: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected exactly one move, got %d", len(pending))
	}
	if o := pending[0].Wait(); o.Status != mover.StatusMoved || o.Category != "Pics" {
		t.Fatalf("unexpected outcome %+v", o)
	}
	testsupport.AssertExists(t, filepath.Join(out, "Pics", "x.png"))
	testsupport.AssertExists(t, filepath.Join(src, "x.PNG"))
	testsupport.AssertExists(t, filepath.Join(src, "y.txt"))
}

func TestBySpecificFileTypesRequiresFolder(t *testing.T) {
	org, _ := newOrganizer(t, nil)
	_, err := org.BySpecificFileTypes(context.Background(), []string{"png"}, "  ", []string{"x.png"}, t.TempDir(), t.TempDir(), false)
	if !errors.Is(err, faults.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDryRunTouchesNothing(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	out := filepath.Join(root, "out")
	testsupport.WriteFiles(t, src, "a.jpg", "b.txt", "c.bin")
	before := testsupport.Snapshot(t, root)

	org, rec := newOrganizer(t, imagesAndText())
	files := []string{"a.jpg", "b.txt", "c.bin"}
	ctx := context.Background()

	var all []mover.Outcome
	p1, err := org.ByDefaults(ctx, files, src, out, true)
	if err != nil {
		t.Fatalf("ByDefaults: %v", err)
	}
	all = append(all, organizer.WaitAll(p1)...)
	p2, err := org.BySpecificFileTypes(ctx, []string{"jpg"}, "Pics", files, src, out, true)
	if err != nil {
		t.Fatalf("BySpecificFileTypes: %v", err)
	}
	all = append(all, organizer.WaitAll(p2)...)
	p3, err := org.ByDates(ctx, files, src, out, true)
	if err != nil {
		t.Fatalf("ByDates: %v", err)
	}
	all = append(all, organizer.WaitAll(p3)...)

	if after := testsupport.Snapshot(t, root); !reflect.DeepEqual(before, after) {
		t.Fatalf("dry run mutated the filesystem:\nbefore=%v\nafter=%v", before, after)
	}
	for _, o := range all {
		if o.Status != mover.StatusPlanned {
			t.Fatalf("expected planned outcome, got %+v", o)
		}
		want := "mv " + filepath.Join(src, o.File) + " " + filepath.Join(out, o.Category, o.File)
		if o.Message != want {
			t.Fatalf("message = %q, want %q", o.Message, want)
		}
	}
	if got := len(rec.Infos()); got != len(all) {
		t.Fatalf("expected %d info lines, got %d", len(all), got)
	}
}

func TestByDatesUsesModificationDate(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	stamp := time.Date(2024, 3, 15, 12, 0, 0, 0, time.Local)
	testsupport.WriteFileAt(t, filepath.Join(src, "report.pdf"), stamp)

	org, _ := newOrganizer(t, nil)
	pending, err := org.ByDates(context.Background(), []string{"report.pdf"}, src, out, false)
	if err != nil {
		t.Fatalf("ByDates: %v", err)
	}
	o := pending[0].Wait()
	if o.Category != "2024-03-15" || o.Status != mover.StatusMoved {
		t.Fatalf("unexpected outcome %+v", o)
	}
	testsupport.AssertExists(t, filepath.Join(out, "2024-03-15", "report.pdf"))
}

func TestByDatesClassificationFailureIsPerFile(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteFiles(t, src, "present.txt")

	org, rec := newOrganizer(t, nil)
	pending, err := org.ByDates(context.Background(), []string{"missing.txt", "present.txt"}, src, out, false)
	if err != nil {
		t.Fatalf("ByDates: %v", err)
	}
	outcomes := organizer.WaitAll(pending)
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(outcomes))
	}
	if !outcomes[0].Failed() || !errors.Is(outcomes[0].Err, faults.ErrClassification) {
		t.Fatalf("expected classification failure, got %+v", outcomes[0])
	}
	if outcomes[1].Status != mover.StatusMoved {
		t.Fatalf("sibling should still move, got %+v", outcomes[1])
	}
	if warns := rec.Warns(); len(warns) != 1 || !strings.Contains(warns[0], "missing.txt") {
		t.Fatalf("unexpected warnings %v", warns)
	}
}

func TestExistingDirectoriesAreReused(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	if err := os.MkdirAll(filepath.Join(out, "Images"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	testsupport.WriteFiles(t, src, "a.jpg", "b.jpg")

	org, _ := newOrganizer(t, imagesAndText())
	pending, err := org.ByDefaults(context.Background(), []string{"a.jpg", "b.jpg"}, src, out, false)
	if err != nil {
		t.Fatalf("ByDefaults: %v", err)
	}
	for _, o := range organizer.WaitAll(pending) {
		if o.Failed() {
			t.Fatalf("unexpected failure %v", o.Err)
		}
	}
	testsupport.AssertExists(t, filepath.Join(out, "Images", "a.jpg"))
	testsupport.AssertExists(t, filepath.Join(out, "Images", "b.jpg"))
}

func TestDirectoryCreationFailureAbortsBatch(t *testing.T) {
	src := t.TempDir()
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	testsupport.WriteFile(t, blocker, 4)
	testsupport.WriteFiles(t, src, "a.jpg")

	org, _ := newOrganizer(t, imagesAndText())
	pending, err := org.ByDefaults(context.Background(), []string{"a.jpg"}, src, filepath.Join(blocker, "out"), false)
	if !errors.Is(err, faults.ErrDirectoryCreation) {
		t.Fatalf("expected directory creation error, got %v", err)
	}
	if !faults.IsFatal(err) {
		t.Fatal("directory creation failure must be fatal")
	}
	if len(pending) != 0 {
		t.Fatalf("nothing should be dispatched, got %d", len(pending))
	}
	testsupport.AssertExists(t, filepath.Join(src, "a.jpg"))
}

func TestUndoRestoresFiles(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteFiles(t, src, "a.jpg", "b.txt")

	org, _ := newOrganizer(t, imagesAndText())
	ctx := context.Background()
	pending, err := org.ByDefaults(ctx, []string{"a.jpg", "b.txt"}, src, out, false)
	if err != nil {
		t.Fatalf("ByDefaults: %v", err)
	}
	var relocations []organizer.Relocation
	for _, o := range organizer.WaitAll(pending) {
		relocations = append(relocations, organizer.Relocation{Source: o.Source, Destination: o.Destination})
	}

	for _, o := range organizer.WaitAll(org.Undo(ctx, relocations, false)) {
		if o.Failed() {
			t.Fatalf("undo failed for %s: %v", o.File, o.Err)
		}
	}
	testsupport.AssertExists(t, filepath.Join(src, "a.jpg"))
	testsupport.AssertExists(t, filepath.Join(src, "b.txt"))
	testsupport.AssertMissing(t, filepath.Join(out, "Images", "a.jpg"))
}

func TestSummarize(t *testing.T) {
	summary := organizer.Summarize([]mover.Outcome{
		{File: "a", Category: "Images", Status: mover.StatusMoved},
		{File: "b", Category: "Images", Status: mover.StatusMoved},
		{File: "c", Category: "Text", Status: mover.StatusPlanned},
		{File: "d", Category: "Text", Status: mover.StatusFailed},
	})
	if summary.Total != 4 || summary.Moved != 2 || summary.Planned != 1 || summary.Failed != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !summary.HasFailures() {
		t.Fatal("expected failures")
	}
	if got := summary.Categories(); !reflect.DeepEqual(got, []string{"Images", "Text"}) {
		t.Fatalf("categories = %v", got)
	}
	if summary.ByCategory["Text"] != 1 {
		t.Fatalf("failed file should not count toward its category: %v", summary.ByCategory)
	}
}

func TestBySpecificFileTypesTrimsLeadingDotOnly(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	testsupport.WriteFiles(t, src, "x.png", "x.PNG")

	org, _ := newOrganizer(t, nil)
	pending, err := org.BySpecificFileTypes(context.Background(), []string{" .PNG "}, "Pics",
		[]string{"x.png", "x.PNG"}, src, out, false)
	if err != nil {
		t.Fatalf("BySpecificFileTypes: %v", err)
	}
	if len(pending) != 1 || pending[0].File() != "x.PNG" {
		t.Fatalf("expected only x.PNG to be selected, got %d handles", len(pending))
	}
	organizer.WaitAll(pending)
	testsupport.AssertExists(t, filepath.Join(out, "Pics", "x.PNG"))
	testsupport.AssertExists(t, filepath.Join(src, "x.png"))
}
