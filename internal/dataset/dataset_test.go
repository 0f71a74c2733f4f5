package dataset

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	input := "Name,Comment,Date\nAlice,Great service!,2024-01-05\nBob,Terrible wait times.,2024-01-20\n"
	d, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}

	if got := d.Columns(); len(got) != 3 || got[1] != "Comment" {
		t.Fatalf("unexpected columns: %v", got)
	}
	if d.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", d.Len())
	}

	v, err := d.Value(1, "Comment")
	if err != nil {
		t.Fatalf("Value error: %v", err)
	}
	if v != "Terrible wait times." {
		t.Fatalf("unexpected value: %q", v)
	}
}

func TestReadCSVEmpty(t *testing.T) {
	t.Parallel()

	if _, err := ReadCSV(strings.NewReader("")); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	t.Parallel()

	d := New("Review", "Date")
	for _, row := range [][]string{
		{"good, really good", "2024-01-05"},
		{"bad", "2024-02-01"},
	} {
		if err := d.AppendRow(row); err != nil {
			t.Fatalf("AppendRow error: %v", err)
		}
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, d); err != nil {
		t.Fatalf("WriteCSV error: %v", err)
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV error: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", back.Len())
	}
	v, _ := back.Value(0, "Review")
	if v != "good, really good" {
		t.Fatalf("quoting lost: %q", v)
	}
}

func TestSetColumnAddAndOverwrite(t *testing.T) {
	t.Parallel()

	d := New("Review")
	_ = d.AppendRow([]string{"fine"})
	_ = d.AppendRow([]string{"meh"})

	if err := d.SetColumn("Sentiment Score", []string{"4", "3"}); err != nil {
		t.Fatalf("SetColumn add error: %v", err)
	}
	if err := d.SetColumn("Sentiment Score", []string{"5", "1"}); err != nil {
		t.Fatalf("SetColumn overwrite error: %v", err)
	}

	col, err := d.Column("Sentiment Score")
	if err != nil {
		t.Fatalf("Column error: %v", err)
	}
	if col[0] != "5" || col[1] != "1" {
		t.Fatalf("unexpected column: %v", col)
	}

	if err := d.SetColumn("Short", []string{"x"}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	d := New("Review")
	_ = d.AppendRow([]string{"original"})

	c := d.Clone()
	if err := c.SetColumn("Review", []string{"mutated"}); err != nil {
		t.Fatalf("SetColumn error: %v", err)
	}
	_ = c.SetColumn("Extra", []string{"x"})

	v, _ := d.Value(0, "Review")
	if v != "original" {
		t.Fatalf("clone mutated parent: %q", v)
	}
	if d.HasColumn("Extra") {
		t.Fatal("clone added column to parent")
	}
}

func TestSelect(t *testing.T) {
	t.Parallel()

	d := New("Review")
	_ = d.AppendRow([]string{"a"})
	_ = d.AppendRow([]string{"b"})
	_ = d.AppendRow([]string{"c"})

	out, err := d.Select([]bool{true, false, true})
	if err != nil {
		t.Fatalf("Select error: %v", err)
	}
	if out.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", out.Len())
	}
	v, _ := out.Value(1, "Review")
	if v != "c" {
		t.Fatalf("unexpected row order: %q", v)
	}

	if _, err := d.Select([]bool{true}); err == nil {
		t.Fatal("expected mask length error")
	}
}

func TestHead(t *testing.T) {
	t.Parallel()

	d := New("Review")
	_ = d.AppendRow([]string{"a"})
	_ = d.AppendRow([]string{"b"})

	if got := d.Head(3).Len(); got != 2 {
		t.Fatalf("Head(3) = %d rows", got)
	}
	if got := d.Head(1).Len(); got != 1 {
		t.Fatalf("Head(1) = %d rows", got)
	}
}
