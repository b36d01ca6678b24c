package ui

import (
	"strings"
	"testing"
)

func TestTruncateTableCellKeepsShortValues(t *testing.T) {
	value := strings.Repeat("a", tableCellMaxWidth-1) + "é"

	if got := TruncateTableCell(value); got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestTruncateTableCellCountsWideRunes(t *testing.T) {
	value := strings.Repeat("猫", tableCellMaxWidth)

	got := TruncateTableCell(value)

	if width := displayWidth(got); width > tableCellMaxWidth {
		t.Fatalf("expected width <= %d, got %d", tableCellMaxWidth, width)
	}
	if !strings.HasSuffix(got, tableCellEllipsis) {
		t.Fatalf("expected ellipsis, got %q", got)
	}
}

func TestTruncateTableCellNormalizesLineBreaks(t *testing.T) {
	got := TruncateTableCell("Hello\nWorld\r\nAgain\tTab")

	if got != "Hello World Again Tab" {
		t.Fatalf("expected line breaks to normalize, got %q", got)
	}
}

func TestTruncateTableCellIgnoresANSICodes(t *testing.T) {
	value := "\x1b[1m" + strings.Repeat("a", tableCellMaxWidth) + "\x1b[0m"

	if got := TruncateTableCell(value); got != value {
		t.Fatalf("expected value to remain untruncated, got %q", got)
	}
}

func TestFormatTable(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		rows    [][]string
		want    string
	}{
		{
			name:    "aligns columns",
			headers: []string{"ID", "TITLE"},
			rows:    [][]string{{"1", "milk"}, {"12", "eggs"}},
			want:    "ID  TITLE\n1   milk\n12  eggs\n",
		},
		{
			name:    "normalizes line breaks",
			headers: []string{"COL"},
			rows:    [][]string{{"Hello\nWorld"}},
			want:    "COL\nHello World\n",
		},
		{
			name:    "pads by display width",
			headers: []string{"TITLE", "X"},
			rows:    [][]string{{"猫", "y"}},
			want:    "TITLE  X\n猫     y\n",
		},
		{
			name:    "ignores ANSI codes when padding",
			headers: []string{"A", "B"},
			rows:    [][]string{{"\x1b[1mxy\x1b[0m", "z"}},
			want:    "A   B\n\x1b[1mxy\x1b[0m  z\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTable(tt.headers, tt.rows); got != tt.want {
				t.Fatalf("FormatTable() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTableBuilder(t *testing.T) {
	builder := NewTableBuilder([]string{"ID", "TITLE"}, 1)
	builder.AddRow([]string{"3", "bread"})

	if got, want := builder.String(), "ID  TITLE\n3   bread\n"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}

func TestStyleHelpers(t *testing.T) {
	original := ansiEnabled
	t.Cleanup(func() { ansiEnabled = original })

	ansiEnabled = func() bool { return false }
	if got := Strike("done"); got != "done" {
		t.Fatalf("expected plain text without a terminal, got %q", got)
	}

	ansiEnabled = func() bool { return true }
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"bold", Bold("ID"), ansiBold + "ID" + ansiReset},
		{"dim", Dim("x"), ansiDim + "x" + ansiReset},
		{"strike", Strike("done"), ansiStrike + "done" + ansiReset},
		{"empty", Strike(""), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
