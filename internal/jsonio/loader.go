// Package jsonio implements background ingestion of the JSON document the
// app explores (spec.md §4.1's "background file ingestion", §6's CLI
// input contract): a one-shot goroutine reads the input file or stdin,
// validates it parses as JSON, and reports progress on a channel.
package jsonio

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/jiqtui/jiq/internal/apperr"
)

// Progress is one update on the load channel: either bytes read so far,
// or a terminal Done/Err.
type Progress struct {
	BytesRead int64
	Total     int64 // -1 when unknown (stdin)
	Done      bool
	Data      []byte // set when Done && Err == nil
	Err       error
}

// Load starts a background goroutine reading from path (or stdin when
// path is empty) and returns a channel delivering exactly one progress
// update per read chunk, terminated by exactly one Done update.
//
// Grounded in the buffered-reader-with-progress-callback shape of
// pkg/ux's streaming readers, adapted from a callback-per-event API to a
// channel (this package has no per-event type to dispatch, just byte
// counts) since the event loop already drains every other worker via a
// channel and a fourth callback-style API would be the odd one out.
func Load(path string) <-chan Progress {
	ch := make(chan Progress, 8)
	go load(path, ch)
	return ch
}

const chunkSize = 256 * 1024

func load(path string, ch chan<- Progress) {
	defer close(ch)

	var r io.Reader
	var total int64 = -1

	if path == "" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			ch <- Progress{Done: true, Err: apperr.New(apperr.Fatal, err).WithHint("could not open input file " + path)}
			return
		}
		defer f.Close()
		if info, err := f.Stat(); err == nil {
			total = info.Size()
		}
		r = f
	}

	var buf bytes.Buffer
	chunk := make([]byte, chunkSize)
	var read int64

	for {
		n, err := r.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			read += int64(n)
			ch <- Progress{BytesRead: read, Total: total}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			ch <- Progress{Done: true, Err: apperr.New(apperr.Fatal, err).WithHint("failed reading JSON input")}
			return
		}
	}

	data := buf.Bytes()
	if err := Validate(data); err != nil {
		ch <- Progress{Done: true, Err: err}
		return
	}
	ch <- Progress{Done: true, Data: data, BytesRead: read, Total: total}
}

// Validate reports whether data parses as JSON, wrapped as a Fatal
// category apperr per spec.md §7 ("Malformed JSON at startup is fatal").
func Validate(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return apperr.New(apperr.Fatal, err).WithHint("input is not valid JSON")
	}
	return nil
}
