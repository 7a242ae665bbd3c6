package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Record is a client document as stored: arbitrary JSON fields keyed by name.
type Record map[string]any

// Age groups and services a record may reference.
var (
	AgeGroups = []string{"minor", "adult", "senior"}
	Services  = []string{"SHOWER", "LAUNDRY", "MNGMT", "MEALS"}

	// ReservedIDs collide with static routes under /clients.
	ReservedIDs = []string{"summary"}
)

// ValidationError is a client mistake in a request body.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// DecodeRecord reads one JSON object. Whole numbers become int64 so they are
// stored as integers rather than doubles.
func DecodeRecord(r io.Reader) (Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &ValidationError{Message: "request body too large", Err: err}
		}
		return nil, &ValidationError{Message: "invalid JSON body", Err: err}
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, invalid("request body must be a JSON object")
	}
	if err := normalizeNumbers(obj); err != nil {
		return nil, err
	}
	return Record(obj), nil
}

// normalizeNumbers replaces json.Number values in place with int64 or
// float64. Numbers outside the float64 range are rejected.
func normalizeNumbers(v any) error {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			n, err := convertNumber(child)
			if err != nil {
				return err
			}
			t[k] = n
		}
	case []any:
		for i, child := range t {
			n, err := convertNumber(child)
			if err != nil {
				return err
			}
			t[i] = n
		}
	}
	return nil
}

func convertNumber(v any) (any, error) {
	num, ok := v.(json.Number)
	if !ok {
		return v, normalizeNumbers(v)
	}
	if n, err := num.Int64(); err == nil {
		return n, nil
	}
	f, err := num.Float64()
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("number %s is out of range", num), Err: err}
	}
	return f, nil
}

// ValidateNew checks a record for creation and returns its key.
func ValidateNew(rec Record) (string, error) {
	id, _ := rec["uuid"].(string)
	if strings.TrimSpace(id) == "" {
		return "", invalid("UUID is required")
	}
	if strings.Contains(id, "/") {
		return "", invalid("UUID must not contain '/'")
	}
	if slices.Contains(ReservedIDs, id) {
		return "", invalid("UUID %q is reserved", id)
	}
	return id, ValidateFields(rec)
}

// ValidateFields checks the typed fields a record may carry. Unknown fields
// are accepted as-is.
func ValidateFields(rec Record) error {
	if v, ok := rec["ageGroup"]; ok {
		g, _ := v.(string)
		if !slices.Contains(AgeGroups, g) {
			return invalid("ageGroup must be one of %s", strings.Join(AgeGroups, ", "))
		}
	}
	if v, ok := rec["benefits"]; ok {
		benefits, ok := v.(map[string]any)
		if !ok {
			return invalid("benefits must be an object")
		}
		for _, k := range slices.Sorted(maps.Keys(benefits)) {
			if !slices.Contains(Services, k) {
				return invalid("unknown service %q in benefits", k)
			}
			if _, ok := number(benefits[k]); !ok {
				return invalid("benefits.%s must be a number", k)
			}
		}
	}
	return nil
}

func number(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
