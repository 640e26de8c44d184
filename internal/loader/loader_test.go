package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.csv"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("Load() error = %v, want ErrFileNotFound", err)
	}
}

func TestLoadPlainUTF8(t *testing.T) {
	path := writeTemp(t, "plain.csv", []byte("Year,Region,Temperature\n2020,North,31.5\n2021,South,28\n"))

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Encoding != "utf-8" {
		t.Errorf("Encoding = %q, want utf-8", table.Encoding)
	}
	if len(table.Headers) != 3 {
		t.Fatalf("Headers = %v, want 3 columns", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("Rows = %d, want 2", len(table.Rows))
	}
	if table.DroppedRows != 0 {
		t.Errorf("DroppedRows = %d, want 0", table.DroppedRows)
	}
	if table.Rows[0][1] != "North" {
		t.Errorf("Rows[0][1] = %q, want North", table.Rows[0][1])
	}
}

func TestLoadUTF8BOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Year,Region\n2020,North\n")...)
	path := writeTemp(t, "bom.csv", data)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Headers[0] != "Year" {
		t.Errorf("Headers[0] = %q, want Year without BOM prefix", table.Headers[0])
	}
}

func TestLoadUTF16LE(t *testing.T) {
	// "Year,Region\n2020,North\n" encoded as UTF-16LE with BOM.
	text := "Year,Region\n2020,North\n"
	data := []byte{0xFF, 0xFE}
	for _, r := range text {
		data = append(data, byte(r), 0x00)
	}
	path := writeTemp(t, "utf16.csv", data)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Encoding != "utf-16le" {
		t.Errorf("Encoding = %q, want utf-16le", table.Encoding)
	}
	if table.Headers[0] != "Year" || table.Rows[0][1] != "North" {
		t.Errorf("decoded table = %v / %v", table.Headers, table.Rows)
	}
}

func TestLoadWindows1252Fallback(t *testing.T) {
	// 0xE9 is é in Windows-1252 and invalid as a standalone UTF-8 byte.
	data := []byte("Year,Region\n2020,Qu\xE9bec\n")
	path := writeTemp(t, "legacy.csv", data)

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if table.Encoding != "windows-1252" {
		t.Errorf("Encoding = %q, want windows-1252", table.Encoding)
	}
	if table.Rows[0][1] != "Québec" {
		t.Errorf("Rows[0][1] = %q, want Québec", table.Rows[0][1])
	}
}

func TestLoadDropsRaggedRows(t *testing.T) {
	path := writeTemp(t, "ragged.csv", []byte(
		"Year,Region,Temperature\n"+
			"2020,North,31.5\n"+
			"2020,South\n"+ // too few fields
			"2021,East,29,extra\n"+ // too many fields
			"2021,West,27\n"))

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(table.Rows) != 2 {
		t.Errorf("Rows = %d, want 2 surviving rows", len(table.Rows))
	}
	if table.DroppedRows != 2 {
		t.Errorf("DroppedRows = %d, want 2", table.DroppedRows)
	}
}

func TestLoadEmptyFile(t *testing.T) {
	path := writeTemp(t, "empty.csv", nil)

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load() error = %v, want ParseError", err)
	}
}

func TestLoadAllRowsRagged(t *testing.T) {
	path := writeTemp(t, "allbad.csv", []byte(
		"Year,Region,Temperature\n"+
			"2020,North\n"+
			"2021,South\n"))

	_, err := Load(path)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("Load() error = %v, want ParseError when every data row is ragged", err)
	}
}

func TestLoadHeaderOnly(t *testing.T) {
	// A header with no data rows is a valid, empty table.
	path := writeTemp(t, "headeronly.csv", []byte("Year,Region,Temperature\n"))

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("Rows = %d, want 0", len(table.Rows))
	}
}
