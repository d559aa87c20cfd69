// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"errors"
	"fmt"
)

// ErrTypeConversion is returned when a declared parameter type has no
// configuration kind.
var ErrTypeConversion = errors.New("parameter type cannot be mapped to a configuration kind")

// Kind is the primitive type a configuration value is coerced to.
type Kind int

// Configuration kinds.
const (
	KindString Kind = iota + 1
	KindInt
	KindFloat
	KindBool
	KindList
)

var kindNames = map[Kind]string{
	KindString: "string",
	KindInt:    "int",
	KindFloat:  "float",
	KindBool:   "bool",
	KindList:   "list",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Type describes the value type a flag or argument was declared with.
type Type int

// Declared types. The first block are primitives, the second block are
// composite wrappers mapped onto a primitive kind.
const (
	TypeUnknown Type = iota
	TypeString
	TypeInt
	TypeFloat
	TypeBool
	TypeRaw
	TypeUUID

	TypeIntRange
	TypeFloatRange
	TypeChoice
	TypeFile
	TypePath
	TypeDateTime
	TypeDuration
	TypeTuple
)

var typeNames = map[Type]string{
	TypeUnknown:    "unknown",
	TypeString:     "string",
	TypeInt:        "int",
	TypeFloat:      "float",
	TypeBool:       "bool",
	TypeRaw:        "raw",
	TypeUUID:       "uuid",
	TypeIntRange:   "int range",
	TypeFloatRange: "float range",
	TypeChoice:     "choice",
	TypeFile:       "file",
	TypePath:       "path",
	TypeDateTime:   "datetime",
	TypeDuration:   "duration",
	TypeTuple:      "tuple",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// Declaration is the part of a flag or argument definition that decides its
// configuration kind.
type Declaration struct {
	Type       Type
	Multiple   bool
	Arity      int
	IsBoolFlag bool
	// GoType names the underlying Go type, used in error messages.
	GoType string
}

var primitiveKinds = map[Type]Kind{
	TypeString: KindString,
	TypeInt:    KindInt,
	TypeFloat:  KindFloat,
	TypeBool:   KindBool,
	TypeRaw:    KindString,
	TypeUUID:   KindString,
}

var compositeKinds = map[Type]Kind{
	TypeIntRange:   KindInt,
	TypeFloatRange: KindFloat,
	TypeChoice:     KindString,
	TypeFile:       KindString,
	TypePath:       KindString,
	TypeDateTime:   KindString,
	TypeDuration:   KindString,
	TypeTuple:      KindList,
}

// InferKind maps a declaration onto a configuration kind. Rules are tried in
// order and the first match wins.
func InferKind(d Declaration) (Kind, error) {
	switch {
	case d.Multiple || d.Arity > 1:
		return KindList, nil
	case d.IsBoolFlag:
		return KindBool, nil
	}

	if k, ok := primitiveKinds[d.Type]; ok {
		return k, nil
	}

	if k, ok := compositeKinds[d.Type]; ok {
		return k, nil
	}

	name := d.GoType
	if name == "" {
		name = d.Type.String()
	}

	return 0, fmt.Errorf("%w: %s", ErrTypeConversion, name)
}
