// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"fmt"
	"reflect"
	"time"
)

type boolFlag interface {
	IsBoolFlag() bool
}

// Declare reads the declaration of a urfave/cli flag or argument.
//
// All the generic flag and argument types of urfave/cli share a Value field
// holding the default, flags carry a TakesFile field and multi-value
// arguments carry Min/Max occurrence counts. Those fields decide the
// declaration, so custom flag types built on cli.FlagBase are covered too.
func Declare(p any) Declaration {
	d := Declaration{Arity: 1, GoType: fmt.Sprintf("%T", p)}

	rv := reflect.ValueOf(p)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return d
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return d
	}

	// Multi-value arguments collect into a slice even when Max is 1.
	if maxTimes, minTimes := rv.FieldByName("Max"), rv.FieldByName("Min"); maxTimes.CanInt() && minTimes.CanInt() {
		d.Multiple = true

		if n := int(maxTimes.Int()); n > 1 {
			d.Arity = n
		}
	}

	var takesFile bool
	if tf := rv.FieldByName("TakesFile"); tf.IsValid() && tf.Kind() == reflect.Bool {
		takesFile = tf.Bool()
	}

	val := rv.FieldByName("Value")
	if !val.IsValid() {
		return d
	}

	if val.Kind() == reflect.Interface {
		if val.IsNil() {
			return d
		}

		val = val.Elem()
	}

	d.GoType = val.Type().String()

	switch val.Interface().(type) {
	case *Choice:
		d.Type = TypeChoice
		return d
	case *UUID:
		d.Type = TypeUUID
		return d
	case *IntRange:
		d.Type = TypeIntRange
		return d
	case *FloatRange:
		d.Type = TypeFloatRange
		return d
	case *Path:
		d.Type = TypePath
		return d
	case *Raw:
		d.Type = TypeRaw
		return d
	case time.Duration:
		d.Type = TypeDuration
		return d
	case time.Time:
		d.Type = TypeDateTime
		return d
	}

	if bf, ok := val.Interface().(boolFlag); ok && bf.IsBoolFlag() {
		d.Type = TypeBool
		d.IsBoolFlag = true

		return d
	}

	switch val.Kind() {
	case reflect.Array:
		d.Type = TypeTuple
		d.Arity = val.Len()
	case reflect.Slice, reflect.Map:
		d.Type = scalarType(val.Type().Elem().Kind(), takesFile)
		d.Multiple = true
	case reflect.Bool:
		d.Type = TypeBool
		d.IsBoolFlag = true
	default:
		d.Type = scalarType(val.Kind(), takesFile)
	}

	return d
}

func scalarType(k reflect.Kind, takesFile bool) Type {
	switch k {
	case reflect.String:
		if takesFile {
			return TypeFile
		}

		return TypeString
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInt
	case reflect.Float32, reflect.Float64:
		return TypeFloat
	case reflect.Bool:
		return TypeBool
	default:
		return TypeUnknown
	}
}

// defaultValue returns the declared default of a flag or argument.
func defaultValue(p any) any {
	rv := reflect.ValueOf(p)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil
	}

	val := rv.FieldByName("Value")
	if !val.IsValid() || !val.CanInterface() {
		return nil
	}

	return val.Interface()
}

func reflectString(p any, field string) (string, bool) {
	rv := reflect.ValueOf(p)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", false
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return "", false
	}

	f := rv.FieldByName(field)
	if !f.IsValid() || f.Kind() != reflect.String {
		return "", false
	}

	return f.String(), true
}
