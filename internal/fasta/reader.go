// internal/fasta/reader.go
package fasta

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TuftsBCB/io/fasta"
)

// Record is one FASTA record with its header ID.
type Record struct {
	ID  string
	Seq string
}

// LoadRecords reads every record from a FASTA file (gzip allowed) in
// file order. Header IDs are truncated at the first whitespace.
func LoadRecords(path string) ([]Record, error) {
	rc, err := openReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	reader := fasta.NewReader(rc)
	var out []Record
	for i := 0; ; i++ {
		sequence, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", path, i+1, err)
		}
		id := sequence.Name
		if f := strings.Fields(id); len(f) > 0 {
			id = f[0]
		}
		if id == "" {
			id = fmt.Sprintf("record_%d", i+1)
		}
		out = append(out, Record{ID: id, Seq: string(sequence.Bytes())})
	}
	return out, nil
}

func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, err
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}
