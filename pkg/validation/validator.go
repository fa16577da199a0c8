// Package validation go-playground/validator üzerine JSON alan adlarıyla çalışan ince bir katman.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Error alan bazlı doğrulama hatalarını taşır.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return strings.Join(parts, "; ")
}

// Validator validator.Validate sarmalayıcısı.
type Validator struct {
	v *validator.Validate
}

// New JSON tag adlarını kullanan bir doğrulayıcı oluşturur.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			name = fld.Tag.Get("form")
		}
		if name == "" || name == "-" {
			return fld.Name
		}
		if i := strings.IndexByte(name, ','); i >= 0 {
			name = name[:i]
		}
		return name
	})
	return &Validator{v: v}
}

// Validate struct'ı doğrular; hata varsa *Error döner.
func (v *Validator) Validate(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	out := &Error{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = friendlyMessage(fe)
	}
	return out
}

func friendlyMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "wajib diisi"
	case "email":
		return "harus berupa alamat email yang valid"
	case "min":
		return fmt.Sprintf("minimal %s karakter", e.Param())
	case "max":
		return fmt.Sprintf("maksimal %s karakter", e.Param())
	case "uuid":
		return "harus berupa UUID yang valid"
	case "oneof":
		return "harus salah satu dari: " + e.Param()
	case "gte":
		return "harus lebih besar atau sama dengan " + e.Param()
	case "lte":
		return "harus lebih kecil atau sama dengan " + e.Param()
	case "url":
		return "harus berupa URL yang valid"
	default:
		return "tidak valid"
	}
}
