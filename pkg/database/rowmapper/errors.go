package rowmapper

import (
	"errors"
	"fmt"
)

var (
	// ErrConversion, tüm ConversionError'ların errors.Is ile eşleştiği sentinel.
	ErrConversion = errors.New("rowmapper: value cannot be converted")

	// ErrNilTarget, MapInto'ya nil pointer verildiğinde döner.
	ErrNilTarget = errors.New("rowmapper: target is nil")

	errUnsupportedType = errors.New("unsupported source type")
	errOverflow        = errors.New("value out of range")
	errNotIntegral     = errors.New("value has a fractional part")
)

// ConversionError, bir kolon değerinin hedef alanın tipine
// dönüştürülemediğini bildirir. Hata çağırana kadar taşınır; mapper
// yerelde kurtarma denemez.
//
// Alanlar:
//   - Column: Satırdaki kolon adı (kaynaktaki yazımıyla)
//   - Value: Dönüştürülemeyen ham değer
//   - Target: Hedef alanın Go tipi (örn: "int", "time.Time")
//   - Err: Alttaki sebep (strconv hatası, taşma vb.)
type ConversionError struct {
	Column string
	Value  any
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("rowmapper: column %q: cannot convert %T(%v) to %s: %v",
		e.Column, e.Value, e.Value, e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is, errors.Is(err, ErrConversion) kontrolünü sağlar.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}
