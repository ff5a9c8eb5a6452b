package rowmapper

import "time"

// Field, tek bir kolonun hedef alana nasıl yazılacağını tanımlar.
// Doğrudan oluşturulmaz; Int, String, Time gibi yapıcılar kullanılır.
type Field[T any] struct {
	Column string
	target string
	set    func(target *T, value any) error
}

// Custom, dönüşümü çağırana bırakan bir alan tanımlar. convert hata
// döndürürse ConversionError'a sarılır.
func Custom[T, V any](column, target string, convert func(any) (V, error), set func(*T, V)) Field[T] {
	return Field[T]{
		Column: column,
		target: target,
		set: func(t *T, value any) error {
			v, err := convert(value)
			if err != nil {
				return err
			}
			set(t, v)
			return nil
		},
	}
}

// Int, int alanı için eşleme.
func Int[T any](column string, set func(*T, int)) Field[T] {
	return Custom(column, "int", ConvertInt, set)
}

// Int64, int64 alanı için eşleme.
func Int64[T any](column string, set func(*T, int64)) Field[T] {
	return Custom(column, "int64", ConvertInt64, set)
}

// Float64, float64 alanı için eşleme.
func Float64[T any](column string, set func(*T, float64)) Field[T] {
	return Custom(column, "float64", ConvertFloat64, set)
}

// String, string alanı için eşleme.
func String[T any](column string, set func(*T, string)) Field[T] {
	return Custom(column, "string", ConvertString, set)
}

// Bool, bool alanı için eşleme.
func Bool[T any](column string, set func(*T, bool)) Field[T] {
	return Custom(column, "bool", ConvertBool, set)
}

// Time, time.Time alanı için eşleme.
func Time[T any](column string, set func(*T, time.Time)) Field[T] {
	return Custom(column, "time.Time", ConvertTime, set)
}

// Bytes, []byte alanı için eşleme.
func Bytes[T any](column string, set func(*T, []byte)) Field[T] {
	return Custom(column, "[]byte", ConvertBytes, set)
}
