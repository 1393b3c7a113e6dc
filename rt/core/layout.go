package core

import (
	"fmt"
	"reflect"
)

// LayoutMismatchError reports a field (or "size"/"align" for the whole
// record) whose layout differs from the device contract.
type LayoutMismatchError struct {
	Field string
	Want  uintptr
	Got   uintptr
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("PTMaterial layout mismatch: %s want %d got %d", e.Field, e.Want, e.Got)
}

type fieldLayout struct {
	name   string
	offset uintptr
	size   uintptr
}

var materialLayout = []fieldLayout{
	{"Albedo", OffsetAlbedo, 12},
	{"Metallic", OffsetMetallic, 4},
	{"Smoothness", OffsetSmoothness, 4},
	{"IsLight", OffsetIsLight, 4},
}

// VerifyLayout re-checks at run time what material.go asserts at compile
// time, plus field order and field sizes.
func VerifyLayout() error {
	return verifyLayout(reflect.TypeOf(PTMaterial{}))
}

func verifyLayout(t reflect.Type) error {
	if t.Size() != MaterialSize {
		return &LayoutMismatchError{Field: "size", Want: MaterialSize, Got: t.Size()}
	}
	if uintptr(t.Align()) != MaterialAlign {
		return &LayoutMismatchError{Field: "align", Want: MaterialAlign, Got: uintptr(t.Align())}
	}

	// Skip the zero-size layout marker.
	var fields []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}
		fields = append(fields, f)
	}
	if len(fields) != len(materialLayout) {
		return &LayoutMismatchError{Field: "fields", Want: uintptr(len(materialLayout)), Got: uintptr(len(fields))}
	}

	for i, want := range materialLayout {
		f := fields[i]
		if f.Name != want.name {
			return fmt.Errorf("PTMaterial field %d: want %s got %s", i, want.name, f.Name)
		}
		if f.Offset != want.offset {
			return &LayoutMismatchError{Field: f.Name, Want: want.offset, Got: f.Offset}
		}
		if f.Type.Size() != want.size {
			return &LayoutMismatchError{Field: f.Name + ".size", Want: want.size, Got: f.Type.Size()}
		}
	}
	return nil
}
