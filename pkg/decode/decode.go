// Package decode converts loosely typed request payloads into typed values.
package decode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// maxExactInt is the largest integer a float64 represents exactly.
const maxExactInt = 1 << 53

// JSON decodes data into T. Empty input and a literal null yield the zero value,
// which lets callers treat omitted argument objects as "all defaults".
// Whole-valued floats such as 10.0 are accepted for integer fields.
func JSON[T any](data []byte) (T, error) {
	var result T

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return result, nil
	}

	normalized, err := normalizeNumbers(trimmed)
	if err != nil {
		return result, fmt.Errorf("decode: %w", err)
	}

	if err := json.Unmarshal(normalized, &result); err != nil {
		return result, fmt.Errorf("decode: %w", err)
	}
	return result, nil
}

// normalizeNumbers rewrites whole-valued float literals as integer literals.
// Fractional values are left alone so integer fields still reject them.
func normalizeNumbers(data []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}

	return json.Marshal(wholeNumbers(v))
}

func wholeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = wholeNumbers(e)
		}
	case []any:
		for i, e := range x {
			x[i] = wholeNumbers(e)
		}
	case json.Number:
		if !strings.ContainsAny(string(x), ".eE") {
			return x
		}
		f, err := strconv.ParseFloat(string(x), 64)
		if err != nil || f != math.Trunc(f) || math.Abs(f) > maxExactInt {
			return x
		}
		return json.Number(strconv.FormatInt(int64(f), 10))
	}
	return v
}

// Body reads at most limit bytes from the request body and decodes them into T.
func Body[T any](r *http.Request, limit int64) (T, error) {
	var result T

	data, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		return result, fmt.Errorf("decode: read body: %w", err)
	}
	if int64(len(data)) > limit {
		return result, fmt.Errorf("decode: body exceeds %d bytes", limit)
	}

	return JSON[T](data)
}
