package adf

import (
	"strings"
	"testing"
)

func TestReport(t *testing.T) {
	m := &Manifest{DiskNumber: 1, Items: []Item{{ID: "AB", Data: make([]byte, 16)}}}

	expected := "FileID\tDisk Offset\tPackedSize\tFileSize\n" +
		"dsk#\t00000001\t00000001\t00000001\n" +
		"AB  \t00000420\t00000000\t00000010\n" +
		"Free\t00000430\t00000000\t000DBBD0\n"

	if got := Report(NewLayout(m)); got != expected {
		t.Fatalf("\n%s\n--- IS NOT SAME AS ---\n%s", got, expected)
	}
}

func TestReportNoItems(t *testing.T) {
	report := Report(NewLayout(&Manifest{DiskNumber: 2}))
	lines := strings.Split(strings.TrimSuffix(report, "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), report)
	}
	if lines[2] != "Free\t00000410\t00000000\t000DBBF0" {
		t.Fatalf("unexpected free row %q", lines[2])
	}
}

func TestReportNegativeDiskNumber(t *testing.T) {
	report := Report(NewLayout(&Manifest{DiskNumber: -1}))

	if !strings.Contains(report, "dsk#\tFFFFFFFF\tFFFFFFFF\tFFFFFFFF\n") {
		t.Fatalf("unexpected disk number row:\n%s", report)
	}
}

func TestReportMatchesImage(t *testing.T) {
	build, err := Assemble(&Manifest{DiskNumber: 7, Items: itemsOfSizes(10, 20, 30)})
	if err != nil {
		t.Fatal(err)
	}

	disk, err := Parse(build.Image)
	if err != nil {
		t.Fatal(err)
	}

	if got := Report(disk.Layout()); got != build.Report {
		t.Fatalf("\n%s\n--- IS NOT SAME AS ---\n%s", got, build.Report)
	}
}
