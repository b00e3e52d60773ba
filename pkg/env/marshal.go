package env

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// MarshalEnv renders the exported, non-zero fields of the struct c points to
// as KEY=value lines, using the key of each field's env tag.
func MarshalEnv(c any) (string, error) {
	v := reflect.ValueOf(c)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return "", fmt.Errorf("env: expected pointer to struct, got %T", c)
	}
	v = v.Elem()
	t := v.Type()

	var lines []string
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		key, _, _ := strings.Cut(field.Tag.Get("env"), ",")
		if key == "" {
			continue
		}

		val := v.Field(i)
		if val.IsZero() {
			continue
		}

		lines = append(lines, key+"="+quote(formatValue(val)))
	}

	if len(lines) == 0 {
		return "", nil
	}
	return strings.Join(lines, "\n") + "\n", nil
}

// WriteFile marshals c into path, readable by the owner only since the file
// holds API keys.
func WriteFile(path string, c any) error {
	content, err := MarshalEnv(c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("env: create dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("env: write %s: %w", path, err)
	}
	return nil
}

func formatValue(v reflect.Value) string {
	if v.Type() == durationType {
		return time.Duration(v.Int()).String()
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
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// quote wraps values godotenv would otherwise split or trim.
func quote(s string) string {
	if strings.ContainsAny(s, " \t#\"'\n") {
		return strconv.Quote(s)
	}
	return s
}
