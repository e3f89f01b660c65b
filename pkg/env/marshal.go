package env

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

const redacted = "****"

type Options struct {
	// Redact replaces fields tagged secret:"true" with a mask.
	Redact bool
	// KeepZero also writes fields holding their zero value.
	KeepZero bool
}

// MarshalEnv reflects over config structs and creates .env content from
// their tags. A key already written by an earlier struct is skipped.
func MarshalEnv(opts Options, configs ...any) (string, error) {
	var lines []string
	seen := map[string]bool{}

	for _, c := range configs {
		v := reflect.ValueOf(c)
		for v.Kind() == reflect.Ptr {
			if v.IsNil() {
				return "", fmt.Errorf("nil config %T", c)
			}
			v = v.Elem()
		}
		if v.Kind() != reflect.Struct {
			return "", fmt.Errorf("config %T is not a struct", c)
		}
		lines = appendFields(lines, v, opts, seen)
	}

	result := strings.Join(lines, "\n")
	if result != "" {
		result += "\n"
	}
	return result, nil
}

func appendFields(lines []string, v reflect.Value, opts Options, seen map[string]bool) []string {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		val := v.Field(i)

		// Parse tag: "KEY,required,notEmpty" or "KEY"
		key := strings.Split(field.Tag.Get("env"), ",")[0]
		if key == "" {
			if val.Kind() == reflect.Struct && val.Type() != reflect.TypeOf(time.Time{}) {
				lines = appendFields(lines, val, opts, seen)
			}
			continue
		}

		if seen[key] || (!opts.KeepZero && isZeroValue(val)) {
			continue
		}
		seen[key] = true

		strVal := formatValue(val, field.Tag.Get("envSeparator"))
		if opts.Redact && field.Tag.Get("secret") == "true" && strVal != "" {
			strVal = redacted
		}
		lines = append(lines, fmt.Sprintf("%s=%s", key, quote(strVal)))
	}
	return lines
}

// isZeroValue checks if a reflect.Value is the zero value for its type
func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface, reflect.Chan, reflect.Func:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}

// formatValue converts a reflect.Value to its string representation
func formatValue(v reflect.Value, sep string) string {
	if d, ok := v.Interface().(time.Duration); ok {
		return d.String()
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	case reflect.Slice:
		if sep == "" {
			sep = ","
		}
		parts := make([]string, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			parts = append(parts, formatValue(v.Index(i), ""))
		}
		return strings.Join(parts, sep)
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// quote wraps values that a dotenv parser would otherwise split or trim.
func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t#\"'\n") {
		return strconv.Quote(s)
	}
	return s
}
