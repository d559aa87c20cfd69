// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package params

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrInvalidChoice is returned when a Choice is set to a value outside its choices.
	ErrInvalidChoice = errors.New("invalid choice")
	// ErrOutOfRange is returned when a bounded value is set outside its bounds.
	ErrOutOfRange = errors.New("value out of range")
	// ErrInvalidUUID is returned when a UUID value cannot be parsed.
	ErrInvalidUUID = errors.New("invalid uuid")
)

// Choice is a cli.Value restricted to an enumerated set of strings.
// Use it as the Value of a cli.GenericFlag.
type Choice struct {
	Choices         []string
	Default         string
	CaseInsensitive bool

	selected string
	set      bool
}

// NewChoice creates a Choice with the given default.
func NewChoice(def string, choices ...string) *Choice {
	return &Choice{Choices: choices, Default: def}
}

// Set implements flag.Value.
func (c *Choice) Set(s string) error {
	for _, o := range c.Choices {
		if o == s || (c.CaseInsensitive && strings.EqualFold(o, s)) {
			c.selected = o
			c.set = true

			return nil
		}
	}

	return fmt.Errorf("%w: %q is not one of %s", ErrInvalidChoice, s, strings.Join(c.Choices, ", "))
}

func (c *Choice) String() string {
	if c.set {
		return c.selected
	}

	return c.Default
}

// Get implements cli.Value.
func (c *Choice) Get() any {
	return c.String()
}

// UUID is a cli.Value holding a parsed UUID.
type UUID struct {
	ID uuid.UUID
}

// Set implements flag.Value.
func (u *UUID) Set(s string) error {
	id, err := uuid.Parse(s)
	if err != nil {
		return errors.Join(ErrInvalidUUID, err)
	}

	u.ID = id

	return nil
}

func (u *UUID) String() string {
	if u.ID == uuid.Nil {
		return ""
	}

	return u.ID.String()
}

// Get implements cli.Value.
func (u *UUID) Get() any {
	return u.ID
}

// IntRange is a cli.Value holding an integer between Min and Max inclusive.
// With Clamp set, out of range input is clamped instead of rejected.
type IntRange struct {
	Min   int64
	Max   int64
	Clamp bool
	Value int64
}

// Set implements flag.Value.
func (r *IntRange) Set(s string) error {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 0, 64)
	if err != nil {
		return err
	}

	switch {
	case v >= r.Min && v <= r.Max:
	case r.Clamp && v < r.Min:
		v = r.Min
	case r.Clamp:
		v = r.Max
	default:
		return fmt.Errorf("%w: %d is not in [%d, %d]", ErrOutOfRange, v, r.Min, r.Max)
	}

	r.Value = v

	return nil
}

func (r *IntRange) String() string {
	return strconv.FormatInt(r.Value, 10)
}

// Get implements cli.Value.
func (r *IntRange) Get() any {
	return r.Value
}

// FloatRange is a cli.Value holding a float between Min and Max inclusive.
type FloatRange struct {
	Min   float64
	Max   float64
	Clamp bool
	Value float64
}

// Set implements flag.Value.
func (r *FloatRange) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}

	switch {
	case v >= r.Min && v <= r.Max:
	case r.Clamp && v < r.Min:
		v = r.Min
	case r.Clamp:
		v = r.Max
	default:
		return fmt.Errorf("%w: %g is not in [%g, %g]", ErrOutOfRange, v, r.Min, r.Max)
	}

	r.Value = v

	return nil
}

func (r *FloatRange) String() string {
	return strconv.FormatFloat(r.Value, 'g', -1, 64)
}

// Get implements cli.Value.
func (r *FloatRange) Get() any {
	return r.Value
}

// Path is a cli.Value holding a cleaned filesystem path that may name a file
// or a directory.
type Path struct {
	Value string
}

// Set implements flag.Value.
func (p *Path) Set(s string) error {
	p.Value = filepath.Clean(s)
	return nil
}

func (p *Path) String() string {
	return p.Value
}

// Get implements cli.Value.
func (p *Path) Get() any {
	return p.Value
}

// Raw is a cli.Value that keeps the given text exactly as written, without
// cleaning, splitting or conversion.
type Raw struct {
	Text string
}

// Set implements flag.Value.
func (r *Raw) Set(s string) error {
	r.Text = s
	return nil
}

func (r *Raw) String() string {
	return r.Text
}

// Get implements cli.Value.
func (r *Raw) Get() any {
	return r.Text
}
