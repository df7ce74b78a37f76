package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

func classifyEvent(mpn, owner string, outcome Outcome) Event {
	e := NewEvent(OpClassify)
	e.MPN = mpn
	e.Outcome = outcome
	if outcome == OutcomeHit {
		e.Classification = &ClassificationEvent{Owner: owner, Type: "LOGIC_IC", Base: "IC", Series: "SN74HC"}
	}
	return e
}

func replacementEvent(req, cand string, ok bool) Event {
	e := NewEvent(OpReplacement)
	e.MPN, e.Candidate = req, cand
	e.Outcome = OutcomeMiss
	if ok {
		e.Outcome = OutcomeHit
	}
	e.Replacement = &ReplacementEvent{
		Replaceable:    ok,
		Stage:          "series",
		Reason:         "series unrelated",
		RequiredOwner:  "ti",
		CandidateOwner: "microchip",
	}
	return e
}

func TestNewEvent(t *testing.T) {
	before := time.Now()
	e := NewEvent(OpRank)
	if e.Operation != OpRank {
		t.Errorf("Operation = %v", e.Operation)
	}
	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("ID %q is not a UUID: %v", e.ID, err)
	}
	if e.Timestamp.Before(before) {
		t.Error("timestamp predates the call")
	}
	if NewEvent(OpRank).ID == e.ID {
		t.Error("ids must be unique")
	}
}

func TestOperationAndOutcomeNames(t *testing.T) {
	for op := OpClassify; op <= OpRank; op++ {
		got, err := ParseOperation(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOperation(%q) = %v, %v", op.String(), got, err)
		}
	}
	if _, err := ParseOperation("bogus"); err == nil {
		t.Error("expected error for unknown operation")
	}
	if Operation(200).String() != "unknown" {
		t.Error("out-of-range operation should be unknown")
	}

	for _, o := range []Outcome{OutcomeHit, OutcomeMiss, OutcomeError} {
		got, err := ParseOutcome(o.String())
		if err != nil || got != o {
			t.Errorf("ParseOutcome(%q) = %v, %v", o.String(), got, err)
		}
	}
	if _, err := ParseOutcome("maybe"); err == nil {
		t.Error("expected error for unknown outcome")
	}
}

func TestEncodeUsesIntegerKeys(t *testing.T) {
	data, err := EncodeEvent(replacementEvent("SN74HC00N", "24LC256", false))
	if err != nil {
		t.Fatalf("EncodeEvent: %v", err)
	}

	var raw map[any]any
	if err := cbor.Unmarshal(data, &raw); err != nil {
		t.Fatalf("raw decode: %v", err)
	}
	for k := range raw {
		if _, ok := k.(uint64); !ok {
			t.Errorf("key %v (%T) is not an integer", k, k)
		}
	}

	decoded, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if decoded.Replacement == nil || decoded.Replacement.CandidateOwner != "microchip" {
		t.Errorf("replacement payload lost: %+v", decoded.Replacement)
	}
	if decoded.Classification != nil || decoded.Error != nil {
		t.Error("unset payloads must stay nil")
	}

	if _, err := DecodeEvent([]byte{0xff, 0x00}); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.mtrace")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger: %v", err)
	}
	logger.Log(classifyEvent("SN74HC00N", "ti", OutcomeHit))
	logger.Log(classifyEvent("NOPE", "", OutcomeMiss))
	logger.Log(replacementEvent("SN74HC00N", "CD74HC00E", true))
	if err := logger.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	logger.Log(classifyEvent("IGNORED", "ti", OutcomeHit))

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	defer r.Close()

	var mpns []string
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next: %v", err)
		}
		mpns = append(mpns, e.MPN)
	}
	want := []string{"SN74HC00N", "NOPE", "SN74HC00N"}
	if len(mpns) != len(want) {
		t.Fatalf("read %v, want %v", mpns, want)
	}
	for i := range want {
		if mpns[i] != want[i] {
			t.Errorf("event %d: got %q, want %q", i, mpns[i], want[i])
		}
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.mtrace")
	for i := 0; i < 2; i++ {
		l, err := NewFileLogger(path)
		if err != nil {
			t.Fatal(err)
		}
		l.Log(classifyEvent("X", "ti", OutcomeHit))
		l.Close()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	r := NewStreamReader(bytes.NewReader(data), Filter{})
	n := 0
	for {
		if _, err := r.Next(); err != nil {
			break
		}
		n++
	}
	if n != 2 {
		t.Errorf("got %d events, want 2", n)
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.mtrace")
	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				l.Log(classifyEvent("X", "ti", OutcomeHit))
			}
		}()
	}
	wg.Wait()
	l.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	n := 0
	for {
		_, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("corrupt stream after %d events: %v", n, err)
		}
		n++
	}
	if n != 200 {
		t.Errorf("got %d events, want 200", n)
	}
}

// flakyWriter accepts limit bytes, then fails every write.
type flakyWriter struct {
	buf    bytes.Buffer
	limit  int
	closed bool
}

var errDiskFull = errors.New("disk full")

func (w *flakyWriter) Write(p []byte) (int, error) {
	if w.buf.Len()+len(p) > w.limit {
		return 0, errDiskFull
	}
	return w.buf.Write(p)
}

func (w *flakyWriter) Close() error {
	w.closed = true
	return nil
}

func TestStreamLoggerKeepsFirstWriteError(t *testing.T) {
	ev := classifyEvent("SN74HC00N", "ti", OutcomeHit)
	first, err := EncodeEvent(ev)
	if err != nil {
		t.Fatal(err)
	}
	w := &flakyWriter{limit: len(first)}
	l := NewStreamLogger(w)

	l.Log(ev)
	if err := l.Err(); err != nil {
		t.Fatalf("unexpected error after first event: %v", err)
	}
	l.Log(classifyEvent("QCC3056", "qualcomm", OutcomeHit))
	l.Log(classifyEvent("QCC3034", "qualcomm", OutcomeHit))

	if got := l.Written(); got != 1 {
		t.Errorf("Written() = %d, want 1", got)
	}
	if !errors.Is(l.Err(), errDiskFull) {
		t.Errorf("Err() = %v, want %v", l.Err(), errDiskFull)
	}
	if err := l.Close(); !errors.Is(err, errDiskFull) {
		t.Errorf("Close() = %v, want %v", err, errDiskFull)
	}
	if !w.closed {
		t.Error("Close did not close the writer")
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}

	e, err := DecodeEvent(w.buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeEvent: %v", err)
	}
	if e.MPN != "SN74HC00N" {
		t.Errorf("kept event %q, want SN74HC00N", e.MPN)
	}
}

func TestFilter(t *testing.T) {
	now := time.Now()
	hit := classifyEvent("SN74HC00N", "ti", OutcomeHit)
	miss := classifyEvent("NOPE", "", OutcomeMiss)
	repl := replacementEvent("SN74HC00N", "24LC256", false)

	op := OpReplacement
	outcome := OutcomeMiss
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name   string
		filter Filter
		event  Event
		want   bool
	}{
		{"empty matches all", Filter{}, miss, true},
		{"operation", Filter{Operation: &op}, hit, false},
		{"operation match", Filter{Operation: &op}, repl, true},
		{"outcome", Filter{Outcome: &outcome}, hit, false},
		{"mpn on candidate", Filter{MPN: "24LC256"}, repl, true},
		{"mpn mismatch", Filter{MPN: "24LC256"}, hit, false},
		{"owner from classification", Filter{Owner: "ti"}, hit, true},
		{"owner from replacement", Filter{Owner: "microchip"}, repl, true},
		{"owner absent", Filter{Owner: "ti"}, miss, false},
		{"time start", Filter{TimeStart: &later}, hit, false},
		{"time end", Filter{TimeEnd: &earlier}, hit, false},
		{"time window", Filter{TimeStart: &earlier, TimeEnd: &later}, hit, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(tt.event); got != tt.want {
				t.Errorf("Matches = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := NewSlogAdapter(logger)

	adapter.Log(replacementEvent("SN74HC00N", "24LC256", false))

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log output: %v", err)
	}
	if entry["op"] != "replacement" {
		t.Errorf("op = %v", entry["op"])
	}
	if entry["candidate"] != "24LC256" {
		t.Errorf("candidate = %v", entry["candidate"])
	}
	if entry["replaceable"] != false {
		t.Errorf("replaceable = %v", entry["replaceable"])
	}
	if entry["level"] != "DEBUG" {
		t.Errorf("level = %v", entry["level"])
	}

	buf.Reset()
	e := NewEvent(OpClassify)
	e.Outcome = OutcomeError
	e.Error = &ErrorEvent{Message: "boom"}
	adapter.Log(e)
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("parse log output: %v", err)
	}
	if entry["level"] != "WARN" || entry["error"] != "boom" {
		t.Errorf("error entry = %v", entry)
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Log(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func TestMultiLogger(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	m := NewMultiLogger(a, nil, b, NoopLogger{})

	m.Log(classifyEvent("X", "ti", OutcomeHit))
	m.Log(classifyEvent("Y", "ti", OutcomeHit))

	if len(a.events) != 2 || len(b.events) != 2 {
		t.Errorf("got %d and %d events, want 2 each", len(a.events), len(b.events))
	}
}
