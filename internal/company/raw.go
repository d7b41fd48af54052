package company

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Raw is a decoded registry payload. Its shape varies between upstream
// versions, so every accessor tolerates missing keys and unexpected types.
// Raw values are never mutated.
type Raw map[string]any

func (r Raw) value(key string) any {
	if r == nil {
		return nil
	}
	return r[key]
}

func (r Raw) object(key string) Raw {
	return asObject(r.value(key))
}

func (r Raw) list(key string) []any {
	items, _ := r.value(key).([]any)
	return items
}

// text returns the first key holding a non-empty scalar.
func (r Raw) text(keys ...string) string {
	for _, key := range keys {
		if s := scalarText(r.value(key)); s != "" {
			return s
		}
	}
	return ""
}

func asObject(v any) Raw {
	switch obj := v.(type) {
	case map[string]any:
		return Raw(obj)
	case Raw:
		return obj
	}
	return nil
}

// scalarText renders strings and numbers as trimmed text. Objects, lists and
// booleans yield "".
func scalarText(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	}
	return ""
}

// scalarFlag reads booleans that may arrive as bools, strings or numbers.
func scalarFlag(v any) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "s", "sim", "y", "yes", "1":
			return true, true
		case "false", "n", "nao", "não", "no", "0":
			return false, true
		}
	case json.Number:
		f, err := b.Float64()
		if err != nil {
			return false, false
		}
		return f != 0, true
	case float64:
		return b != 0, true
	}
	return false, false
}

// scalarAmount reads monetary values sent as numbers or numeric strings.
func scalarAmount(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, err := n.Float64()
		if err == nil {
			return f
		}
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err == nil {
			return f
		}
	case int:
		return float64(n)
	}
	return 0
}

func onlyDigits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
