package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/tasktracker/internal/domain"
)

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// Encoder writes a header followed by one record per task.
type Encoder struct {
	w           *csv.Writer
	wroteHeader bool
}

func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: csv.NewWriter(w)}
}

// Encode writes t, preceded by the header on the first call.
func (e *Encoder) Encode(t *domain.Task) error {
	if err := e.writeHeader(); err != nil {
		return err
	}
	if err := e.w.Write(Marshal(t)); err != nil {
		return fmt.Errorf("writing task %d: %w", t.ID, err)
	}
	return nil
}

// Close writes the header if nothing else was written and flushes.
func (e *Encoder) Close() error {
	if err := e.writeHeader(); err != nil {
		return err
	}
	e.w.Flush()
	if err := e.w.Error(); err != nil {
		return fmt.Errorf("flushing records: %w", err)
	}
	return nil
}

func (e *Encoder) writeHeader() error {
	if e.wroteHeader {
		return nil
	}
	e.wroteHeader = true
	if err := e.w.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	return nil
}

// Decoder reads tasks from a record stream, skipping a leading header.
type Decoder struct {
	r     *csv.Reader
	first bool
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: newReader(r), first: true}
}

// Decode returns the next task, or io.EOF when the stream is exhausted.
// Failures are reported as *DecodeError.
func (d *Decoder) Decode() (*domain.Task, error) {
	for {
		rec, err := d.r.Read()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &DecodeError{Line: pe.Line, Err: pe.Err}
			}
			return nil, fmt.Errorf("reading records: %w", err)
		}
		line, _ := d.r.FieldPos(0)
		if d.first {
			d.first = false
			if IsHeader(rec) {
				continue
			}
		}
		t, err := Unmarshal(rec)
		if err != nil {
			return nil, &DecodeError{Line: line, Record: strings.Join(rec, ","), Err: err}
		}
		return t, nil
	}
}

// DecodeAll reads every task in r.
func DecodeAll(r io.Reader) ([]*domain.Task, error) {
	d := NewDecoder(r)
	var out []*domain.Task
	for {
		t, err := d.Decode()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
}

// EncodeAll writes the header and every task in ts to w.
func EncodeAll(w io.Writer, ts []*domain.Task) error {
	e := NewEncoder(w)
	for _, t := range ts {
		if err := e.Encode(t); err != nil {
			return err
		}
	}
	return e.Close()
}
