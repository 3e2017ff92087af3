package tui

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/HardWorkingMan-ua/mullvad-vpn-account-gen/config"
)

// BuildNavigationForStruct turns a struct's exported fields into menu
// items. Nested config sections become navigable entries.
func BuildNavigationForStruct(v any) []ConfigItem {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	var items []ConfigItem
	rt := rv.Type()
	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		items = append(items, ConfigItem{
			Name:     field.Name,
			Value:    rv.Field(i).Interface(),
			IsStruct: rv.Field(i).Kind() == reflect.Struct,
		})
	}
	return items
}

// GetValueByPath walks nested struct fields by name.
func GetValueByPath(cfg *config.Config, path []string) any {
	rv := reflect.ValueOf(cfg).Elem()
	for _, name := range path {
		rv = rv.FieldByName(name)
		if !rv.IsValid() {
			return nil
		}
	}
	return rv.Interface()
}

// SetField parses raw input and assigns it to the named field under path.
func SetField(cfg *config.Config, path []string, name, raw string) error {
	rv := reflect.ValueOf(cfg).Elem()
	for _, p := range path {
		rv = rv.FieldByName(p)
		if !rv.IsValid() {
			return fmt.Errorf("unknown config section %q", p)
		}
	}
	field := rv.FieldByName(name)
	if !field.IsValid() || !field.CanSet() {
		return fmt.Errorf("unknown config field %q", name)
	}

	// Types like zapcore.Level know how to parse themselves.
	if field.CanAddr() {
		if tu, ok := field.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return tu.UnmarshalText([]byte(raw))
		}
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("parsing %q as bool: %w", raw, err)
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("parsing %q as duration: %w", raw, err)
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %q as integer: %w", raw, err)
		}
		field.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("parsing %q as unsigned integer: %w", raw, err)
		}
		field.SetUint(n)
	default:
		return fmt.Errorf("field %q has unsupported type %s", name, field.Type())
	}
	return nil
}

// FormatValue renders a field value for display.
func FormatValue(v any) string {
	if d, ok := v.(time.Duration); ok {
		return d.String()
	}
	return fmt.Sprintf("%v", v)
}
