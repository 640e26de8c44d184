package loader

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrFileNotFound is returned when the dataset file does not exist. The
// caller must surface it and halt; there is no partial dashboard.
var ErrFileNotFound = errors.New("dataset file not found")

// ParseError reports structurally broken tabular input: a missing or
// unreadable header row, or a file whose every data row is ragged. Individual
// ragged rows are dropped, not fatal (see RawTable.DroppedRows).
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// RawTable is the loader output: header names and text cells, before any
// normalization or type coercion.
type RawTable struct {
	Headers     []string
	Rows        [][]string
	DroppedRows int
	Encoding    string
}

// Load reads a delimited text file into a RawTable. The byte stream is
// decoded using a best-effort encoding heuristic before CSV parsing; rows
// whose field count disagrees with the header are dropped and counted.
func Load(path string) (*RawTable, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	decoded, encName, err := decodeBytes(data)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "transcoding failed", Err: err}
	}

	table, err := parseCSV(path, decoded)
	if err != nil {
		return nil, err
	}
	table.Encoding = encName
	return table, nil
}

// decodeBytes converts raw file bytes to UTF-8. Detection is a BOM sniff
// followed by a UTF-8 validity check; invalid UTF-8 falls back to
// Windows-1252. Inconclusive input defaults to UTF-8.
func decodeBytes(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return data[3:], "utf-8", nil
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		return out, "utf-16le", err
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		return out, "utf-16be", err
	case utf8.Valid(data):
		return data, "utf-8", nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		return out, "windows-1252", err
	}
}

// parseCSV splits decoded text into a header plus rectangular rows.
func parseCSV(path string, data []byte) (*RawTable, error) {
	reader := csv.NewReader(bytes.NewReader(data))

	headers, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, &ParseError{Path: path, Reason: "empty file, header row required"}
		}
		return nil, &ParseError{Path: path, Reason: "unreadable header row", Err: err}
	}

	table := &RawTable{Headers: headers}
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if errors.Is(err, csv.ErrFieldCount) {
				table.DroppedRows++
				continue
			}
			return nil, &ParseError{Path: path, Reason: "malformed delimited text", Err: err}
		}
		table.Rows = append(table.Rows, row)
	}

	if len(table.Rows) == 0 && table.DroppedRows > 0 {
		return nil, &ParseError{
			Path:   path,
			Reason: fmt.Sprintf("no rectangular rows, dropped all %d data rows", table.DroppedRows),
		}
	}

	return table, nil
}
