package dataset

import (
	"os"
	"path/filepath"
	"testing"
)

// ============================================================================
// Header and cell cleanup
// ============================================================================

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already normalized", input: "tcgplayer_id", want: "tcgplayer_id"},
		{name: "mixed case with spaces", input: "TCGplayer Id", want: "tcgplayer_id"},
		{name: "surrounding whitespace", input: "  Max Qty  ", want: "max_qty"},
		{name: "excel formula prefix", input: `="Add to Quantity"`, want: "add_to_quantity"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeHeader(tt.input); got != tt.want {
				t.Errorf("NormalizeHeader(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain value", input: "12345", want: "12345"},
		{name: "whitespace trimmed", input: "  12345 ", want: "12345"},
		{name: "excel formula quoted", input: `="12345"`, want: "12345"},
		{name: "bare equals prefix", input: "=12345", want: "12345"},
		{name: "surrounding quotes", input: `"12345"`, want: "12345"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ============================================================================
// CSV reading
// ============================================================================

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp csv: %v", err)
	}
	return path
}

func TestReadCSV_NormalizesHeadersAndSkipsEmptyRows(t *testing.T) {
	path := writeTempCSV(t, "TCGplayer Id,Add to Quantity,TCG Market Price\n123,4,1.50\n,,\n456,2,0.25\n")

	ds, err := ReadCSV("submission", path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	wantCols := []string{"tcgplayer_id", "add_to_quantity", "tcg_market_price"}
	if len(ds.Columns) != len(wantCols) {
		t.Fatalf("Columns = %v, want %v", ds.Columns, wantCols)
	}
	for i, col := range wantCols {
		if ds.Columns[i] != col {
			t.Errorf("Columns[%d] = %q, want %q", i, ds.Columns[i], col)
		}
	}

	if len(ds.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2 (empty row dropped)", len(ds.Rows))
	}
	if ds.Rows[0]["tcgplayer_id"] != "123" {
		t.Errorf("Rows[0][tcgplayer_id] = %q, want %q", ds.Rows[0]["tcgplayer_id"], "123")
	}
	if ds.Rows[1]["tcg_market_price"] != "0.25" {
		t.Errorf("Rows[1][tcg_market_price] = %q, want %q", ds.Rows[1]["tcg_market_price"], "0.25")
	}
}

func TestReadCSV_SkipsBOM(t *testing.T) {
	path := writeTempCSV(t, "\xEF\xBB\xBFtcgplayer_id\n123\n")

	ds, err := ReadCSV("catalog", path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(ds.Columns) != 1 || ds.Columns[0] != "tcgplayer_id" {
		t.Errorf("Columns = %v, want [tcgplayer_id]", ds.Columns)
	}
}

func TestReadCSV_ToleratesRaggedRows(t *testing.T) {
	path := writeTempCSV(t, "tcgplayer_id,max_qty\n123\n456,7,extra\n")

	ds, err := ReadCSV("pullsheet", path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(ds.Rows))
	}
	if _, ok := ds.Rows[0]["max_qty"]; ok {
		t.Error("short row should have no max_qty entry")
	}
	if ds.Rows[1]["max_qty"] != "7" {
		t.Errorf("Rows[1][max_qty] = %q, want %q", ds.Rows[1]["max_qty"], "7")
	}
}

func TestReadCSV_SanitizesInvalidUTF8(t *testing.T) {
	// 0xE9 is Latin-1 "e with acute"; invalid as a standalone UTF-8 byte.
	path := writeTempCSV(t, "name,qty\ncaf\xe9,1\n")

	ds, err := ReadCSV("submission", path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if ds.Rows[0]["name"] != "caf�" {
		t.Errorf("Rows[0][name] = %q, want %q", ds.Rows[0]["name"], "caf�")
	}
}

func TestReadFile_RejectsUnknownExtension(t *testing.T) {
	if _, err := ReadFile("submission", "cards.pdf"); err == nil {
		t.Error("ReadFile() = nil error for .pdf, want error")
	}
}

// ============================================================================
// CSV writing
// ============================================================================

func TestWriteCSV_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.csv")

	columns := []string{"tcgplayer_id", "pull_quantity"}
	rows := []Row{
		{"tcgplayer_id": "123", "pull_quantity": "4"},
		{"tcgplayer_id": "456"}, // missing cell becomes empty string
	}

	if err := WriteCSV(path, columns, rows); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	ds, err := ReadCSV("report", path)
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(ds.Rows))
	}
	if ds.Rows[0]["pull_quantity"] != "4" {
		t.Errorf("Rows[0][pull_quantity] = %q, want %q", ds.Rows[0]["pull_quantity"], "4")
	}
	if ds.Rows[1]["pull_quantity"] != "" {
		t.Errorf("Rows[1][pull_quantity] = %q, want empty", ds.Rows[1]["pull_quantity"])
	}
}
