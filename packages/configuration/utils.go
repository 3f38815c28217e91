package configuration

import (
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
)

var durationType = reflect.TypeOf(time.Duration(0))

// DefineParameters defines one flag per field of the struct parameters points to. The flag name is the prefix joined
// with the lower camel case field name (or the "name" tag), its default and help text come from the "default" and
// "usage" tags. Nested structs extend the prefix.
func (c *Configuration) DefineParameters(parameters interface{}, prefix string) {
	val := reflect.ValueOf(parameters).Elem()
	for i := 0; i < val.NumField(); i++ {
		valueField := val.Field(i)
		typeField := val.Type().Field(i)

		valueAddr := valueField.Addr().Interface()
		var name string
		if customName := typeField.Tag.Get("name"); customName != "" {
			name = customName
		} else {
			name = lowerCamelCase(typeField.Name)
		}
		key := prefix + "." + name
		defaultTag := typeField.Tag.Get("default")
		usage := typeField.Tag.Get("usage")

		if valueField.Type() == durationType {
			c.flags.DurationVar(valueAddr.(*time.Duration), key, mustParse(key, defaultTag, time.ParseDuration), usage)
			c.bind(key, valueField)
			continue
		}

		switch valueField.Interface().(type) {
		case bool:
			c.flags.BoolVar(valueAddr.(*bool), key, mustParse(key, defaultTag, strconv.ParseBool), usage)
		case int:
			c.flags.IntVar(valueAddr.(*int), key, mustParse(key, defaultTag, strconv.Atoi), usage)
		case int64:
			c.flags.Int64Var(valueAddr.(*int64), key, mustParse(key, defaultTag, func(s string) (int64, error) {
				return strconv.ParseInt(s, 10, 64)
			}), usage)
		case uint64:
			c.flags.Uint64Var(valueAddr.(*uint64), key, mustParse(key, defaultTag, func(s string) (uint64, error) {
				return strconv.ParseUint(s, 10, 64)
			}), usage)
		case string:
			c.flags.StringVar(valueAddr.(*string), key, defaultTag, usage)
		case []string:
			var defaultValue []string
			if defaultTag != "" {
				defaultValue = strings.Split(defaultTag, ",")
			}
			c.flags.StringSliceVar(valueAddr.(*[]string), key, defaultValue, usage)
		default:
			c.DefineParameters(valueAddr, key)
			continue
		}
		c.bind(key, valueField)
	}
}

// mustParse parses the default tag of a parameter. A malformed default is a programming error.
func mustParse[T any](key, value string, parse func(string) (T, error)) T {
	var zero T
	if value == "" {
		return zero
	}
	parsed, err := parse(value)
	if err != nil {
		panic(errors.Wrapf(err, "invalid default of parameter %s", key))
	}
	return parsed
}

func lowerCamelCase(str string) string {
	runes := []rune(str)
	runeCount := len(runes)

	if runeCount == 0 || unicode.IsLower(runes[0]) {
		return str
	}

	runes[0] = unicode.ToLower(runes[0])
	if runeCount == 1 || unicode.IsLower(runes[1]) {
		return string(runes)
	}

	for i := 1; i < runeCount; i++ {
		if i+1 < runeCount && unicode.IsLower(runes[i+1]) {
			break
		}

		runes[i] = unicode.ToLower(runes[i])
	}

	return string(runes)
}
