package frame

import (
	"fmt"
	"strconv"
)

// Type enumerates the value types a column can hold.
type Type int

const (
	TypeInvalid Type = iota
	TypeBool
	TypeInt
	TypeFloat
	TypeString
)

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	}
	return "invalid"
}

// Numeric reports whether values of t are numbers.
func (t Type) Numeric() bool { return t == TypeInt || t == TypeFloat }

// Column is a named, typed, nullable sequence of values.
type Column interface {
	Name() string
	Type() Type
	Len() int
	IsNull(i int) bool
	// Value returns the cell as bool, int64, float64 or string, nil when null.
	Value(i int) any
	// AppendValue converts v to the column type and appends it; nil appends a null.
	AppendValue(v any) error
	// Take returns a new column holding the given rows in order.
	Take(rows []int) Column
	// Rename returns a copy of the column under another name.
	Rename(name string) Column
}

type scalar interface {
	bool | int64 | float64 | string
}

// Vector is the Column implementation for every value type.
type Vector[T scalar] struct {
	name  string
	typ   Type
	data  []T
	nulls []bool
}

type (
	BoolColumn   = Vector[bool]
	IntColumn    = Vector[int64]
	FloatColumn  = Vector[float64]
	StringColumn = Vector[string]
)

func NewBoolColumn(name string) *BoolColumn     { return &BoolColumn{name: name, typ: TypeBool} }
func NewIntColumn(name string) *IntColumn       { return &IntColumn{name: name, typ: TypeInt} }
func NewFloatColumn(name string) *FloatColumn   { return &FloatColumn{name: name, typ: TypeFloat} }
func NewStringColumn(name string) *StringColumn { return &StringColumn{name: name, typ: TypeString} }

// NewColumn returns an empty column of type t.
func NewColumn(name string, t Type) (Column, error) {
	switch t {
	case TypeBool:
		return NewBoolColumn(name), nil
	case TypeInt:
		return NewIntColumn(name), nil
	case TypeFloat:
		return NewFloatColumn(name), nil
	case TypeString:
		return NewStringColumn(name), nil
	}
	return nil, fmt.Errorf("column %s: invalid type", name)
}

func (c *Vector[T]) Name() string        { return c.name }
func (c *Vector[T]) Type() Type          { return c.typ }
func (c *Vector[T]) Len() int            { return len(c.data) }
func (c *Vector[T]) IsNull(i int) bool   { return c.nulls[i] }
func (c *Vector[T]) SetNull(i int)       { c.nulls[i] = true }
func (c *Vector[T]) Get(i int) (T, bool) { return c.data[i], !c.nulls[i] }
func (c *Vector[T]) Set(i int, v T)      { c.data[i] = v; c.nulls[i] = false }
func (c *Vector[T]) Append(v T)          { c.data = append(c.data, v); c.nulls = append(c.nulls, false) }

func (c *Vector[T]) AppendNull() {
	var zero T
	c.data = append(c.data, zero)
	c.nulls = append(c.nulls, true)
}

func (c *Vector[T]) Rename(name string) Column {
	out := c.clone()
	out.name = name
	return out
}

func (c *Vector[T]) Value(i int) any {
	if c.nulls[i] {
		return nil
	}
	return c.data[i]
}

func (c *Vector[T]) AppendValue(v any) error {
	if v == nil {
		c.AppendNull()
		return nil
	}
	x, err := convert[T](c.typ, v)
	if err != nil {
		return fmt.Errorf("column %s: %w", c.name, err)
	}
	c.Append(x)
	return nil
}

func (c *Vector[T]) Take(rows []int) Column {
	out := &Vector[T]{name: c.name, typ: c.typ, data: make([]T, len(rows)), nulls: make([]bool, len(rows))}
	for i, r := range rows {
		out.data[i] = c.data[r]
		out.nulls[i] = c.nulls[r]
	}
	return out
}

func (c *Vector[T]) clone() *Vector[T] {
	return &Vector[T]{
		name:  c.name,
		typ:   c.typ,
		data:  append([]T(nil), c.data...),
		nulls: append([]bool(nil), c.nulls...),
	}
}

// convert coerces v into the Go type backing t.
func convert[T scalar](t Type, v any) (T, error) {
	var zero T
	var out any
	switch t {
	case TypeBool:
		switch x := v.(type) {
		case bool:
			out = x
		case string:
			b, err := strconv.ParseBool(x)
			if err != nil {
				return zero, err
			}
			out = b
		}
	case TypeInt:
		switch x := v.(type) {
		case int:
			out = int64(x)
		case int32:
			out = int64(x)
		case int64:
			out = x
		case float64:
			out = int64(x)
		case string:
			n, err := strconv.ParseInt(x, 10, 64)
			if err != nil {
				return zero, err
			}
			out = n
		}
	case TypeFloat:
		switch x := v.(type) {
		case float32:
			out = float64(x)
		case float64:
			out = x
		case int:
			out = float64(x)
		case int32:
			out = float64(x)
		case int64:
			out = float64(x)
		case string:
			f, err := strconv.ParseFloat(x, 64)
			if err != nil {
				return zero, err
			}
			out = f
		}
	case TypeString:
		out = Format(v)
	}
	x, ok := out.(T)
	if !ok {
		return zero, fmt.Errorf("cannot store %T as %s", v, t)
	}
	return x, nil
}

// Format renders a cell value the way the writers print it.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}
