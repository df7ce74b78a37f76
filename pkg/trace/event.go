package trace

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// Event is one engine decision. CBOR encoding uses integer keys.
type Event struct {
	// Timestamp when the call started.
	Timestamp time.Time `cbor:"1,keyasint"`

	// ID uniquely identifies the event (UUID).
	ID string `cbor:"2,keyasint"`

	Operation Operation `cbor:"3,keyasint"`
	Outcome   Outcome   `cbor:"4,keyasint"`

	// Duration of the call.
	Duration time.Duration `cbor:"5,keyasint,omitempty"`

	// MPN is the queried part, or the required part for replacement checks.
	MPN string `cbor:"6,keyasint,omitempty"`

	// Candidate is the candidate part of a replacement check.
	Candidate string `cbor:"7,keyasint,omitempty"`

	// Operation-specific payload.
	Classification *ClassificationEvent `cbor:"10,keyasint,omitempty"`
	Replacement    *ReplacementEvent    `cbor:"11,keyasint,omitempty"`
	Error          *ErrorEvent          `cbor:"12,keyasint,omitempty"`
}

// Trace files are written canonically with nanosecond timestamps. Readers
// accept indefinite lengths and ignore duplicate keys so older files stay
// readable.
var (
	eventEnc = mustEncMode(cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	})
	eventDec = mustDecMode(cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	em, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("trace: event encoder: %v", err))
	}
	return em
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	dm, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("trace: event decoder: %v", err))
	}
	return dm
}

// EncodeEvent encodes one event.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEnc.Marshal(event)
}

// DecodeEvent decodes one event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	if err := eventDec.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decoding trace event: %w", err)
	}
	return event, nil
}

// NewDecoder returns a decoder for a stream of events.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return eventDec.NewDecoder(r)
}

// NewEvent returns an event for op stamped with the current time and a
// fresh id.
func NewEvent(op Operation) Event {
	return Event{
		Timestamp: time.Now(),
		ID:        uuid.NewString(),
		Operation: op,
	}
}

// Operation is the engine call that produced an event.
type Operation uint8

const (
	OpClassify Operation = iota
	OpClassifyAs
	OpReplacement
	OpExtractSeries
	OpExtractPackage
	OpRank
)

var operationNames = []string{
	OpClassify:       "classify",
	OpClassifyAs:     "classify_as",
	OpReplacement:    "replacement",
	OpExtractSeries:  "extract_series",
	OpExtractPackage: "extract_package",
	OpRank:           "rank",
}

// String returns the operation name.
func (o Operation) String() string {
	if int(o) < len(operationNames) {
		return operationNames[o]
	}
	return "unknown"
}

// ParseOperation parses an operation name.
func ParseOperation(s string) (Operation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range operationNames {
		if n == s {
			return Operation(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", s)
}

// Outcome summarizes the result of an operation.
type Outcome uint8

const (
	// OutcomeHit means the part was classified or the candidate admitted.
	OutcomeHit Outcome = iota
	// OutcomeMiss means no classification or a rejected candidate.
	OutcomeMiss
	// OutcomeError means the call failed.
	OutcomeError
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseOutcome parses an outcome name.
func ParseOutcome(s string) (Outcome, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hit":
		return OutcomeHit, nil
	case "miss":
		return OutcomeMiss, nil
	case "error":
		return OutcomeError, nil
	default:
		return 0, fmt.Errorf("unknown outcome %q", s)
	}
}

// ClassificationEvent carries the result of a classification.
type ClassificationEvent struct {
	Owner   string `cbor:"1,keyasint,omitempty"`
	Type    string `cbor:"2,keyasint,omitempty"`
	Base    string `cbor:"3,keyasint,omitempty"`
	Series  string `cbor:"4,keyasint,omitempty"`
	Package string `cbor:"5,keyasint,omitempty"`
}

// ReplacementEvent carries a replacement verdict.
type ReplacementEvent struct {
	Replaceable    bool     `cbor:"1,keyasint"`
	Stage          string   `cbor:"2,keyasint"`
	Reason         string   `cbor:"3,keyasint,omitempty"`
	RequiredOwner  string   `cbor:"4,keyasint,omitempty"`
	CandidateOwner string   `cbor:"5,keyasint,omitempty"`
	Unmet          []string `cbor:"6,keyasint,omitempty"`
}

// ErrorEvent carries a failed call's error.
type ErrorEvent struct {
	Message string `cbor:"1,keyasint"`
}

// Owners returns the owners referenced by the event.
func (e Event) Owners() []string {
	var out []string
	if e.Classification != nil && e.Classification.Owner != "" {
		out = append(out, e.Classification.Owner)
	}
	if e.Replacement != nil {
		if e.Replacement.RequiredOwner != "" {
			out = append(out, e.Replacement.RequiredOwner)
		}
		if e.Replacement.CandidateOwner != "" && e.Replacement.CandidateOwner != e.Replacement.RequiredOwner {
			out = append(out, e.Replacement.CandidateOwner)
		}
	}
	return out
}
