// Package environment provides support for env vars.

package environment

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ParseEnvTags fills a struct from environment variables using struct tags.
func ParseEnvTags(prefix string, cfg any) error {
	return parseTags(prefix, cfg, nil)
}

// parseTags skips the default for fields whose toml key is in defined, so
// values decoded from a config file survive unless the env overrides them.
func parseTags(prefix string, cfg any, defined map[string]bool) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return errors.New("cfg must be a pointer to a struct")
	}

	v = v.Elem()
	t := v.Type()

	for i := range v.NumField() {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		envKey := fieldType.Tag.Get("env")
		if envKey == "" {
			continue
		}

		defaultValue := fieldType.Tag.Get("default")
		separator := fieldType.Tag.Get("separator")
		required := fieldType.Tag.Get("required") == "true"

		ek := GetNamespaceEnvKey(prefix, envKey)

		value := os.Getenv(ek)
		if value == "" {
			if defined[fieldType.Tag.Get("toml")] {
				continue
			}
			if required {
				return fmt.Errorf("required environment variable %s is not set", ek)
			}
			value = defaultValue
		}

		if err := setFieldValue(field, value, separator); err != nil {
			return fmt.Errorf("error setting field %s: %w", fieldType.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value based on its type
func setFieldValue(field reflect.Value, value, separator string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int32, reflect.Int64:
		if value == "" {
			return nil
		}
		// time.Duration is an int64 under the hood
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return fmt.Errorf("cannot parse duration: %w", err)
			}
			field.SetInt(int64(duration))
			return nil
		}
		intVal, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("cannot parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Bool:
		if value == "" {
			return nil
		}
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cannot parse bool: %w", err)
		}
		field.SetBool(boolVal)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		if value == "" {
			return nil
		}
		if separator == "" {
			separator = ","
		}
		parts := strings.Split(value, separator)
		stringSlice := make([]string, len(parts))
		for i, part := range parts {
			stringSlice[i] = strings.TrimSpace(part)
		}
		field.Set(reflect.ValueOf(stringSlice))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
