// -----------------------------------------------------------------------------
// Tip Dönüşümleri
// -----------------------------------------------------------------------------
// Sürücülerden gelen değerler her zaman alanın tipinde gelmez: MySQL
// sayıları []byte olarak, SQLite tamsayıları int64 olarak, Postgres
// NUMERIC'i string olarak döndürebilir. Buradaki Convert* fonksiyonları bu
// farkları tek noktada kapatır.
//
// Kural: dönüştürülemeyen değer asla sessizce sıfır değere çevrilmez,
// her zaman hata döner.
// -----------------------------------------------------------------------------

package rowmapper

import (
	"database/sql/driver"
	"math"
	"strconv"
	"strings"
	"time"
)

// timeLayouts, string kaynaklı zaman değerleri için denenecek formatlar.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// unwrap, driver.Valuer sarmalayıcılarını (sql.NullString vb.) açar.
func unwrap(v any) (any, error) {
	valuer, ok := v.(driver.Valuer)
	if !ok {
		return v, nil
	}
	return valuer.Value()
}

// IsNull, değerin veritabanı NULL'u olup olmadığını söyler.
// nil ve Valid=false olan Null* sarmalayıcıları NULL kabul edilir.
func IsNull(v any) bool {
	if v == nil {
		return true
	}
	inner, err := unwrap(v)
	return err == nil && inner == nil
}

// ConvertInt64, değeri int64'e dönüştürür.
func ConvertInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return 0, errOverflow
		}
		return int64(n), nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, errOverflow
		}
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case float64:
		return floatToInt64(n)
	case float32:
		return floatToInt64(float64(n))
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(n)), 10, 64)
	}
	return 0, errUnsupportedType
}

func floatToInt64(f float64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotIntegral
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, errOverflow
	}
	return int64(f), nil
}

// ConvertInt, değeri platform int'ine dönüştürür.
func ConvertInt(v any) (int, error) {
	n, err := ConvertInt64(v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt || n > math.MaxInt {
		return 0, errOverflow
	}
	return int(n), nil
}

// ConvertFloat64, değeri float64'e dönüştürür.
func ConvertFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(n), 64)
	case []byte:
		return strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	case bool:
		return 0, errUnsupportedType
	}

	i, err := ConvertInt64(v)
	if err != nil {
		return 0, err
	}
	return float64(i), nil
}

// ConvertString, değeri string'e dönüştürür.
func ConvertString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case []byte:
		return string(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case int:
		return strconv.Itoa(s), nil
	case int32:
		return strconv.FormatInt(int64(s), 10), nil
	case int16:
		return strconv.FormatInt(int64(s), 10), nil
	case int8:
		return strconv.FormatInt(int64(s), 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case uint:
		return strconv.FormatUint(uint64(s), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(s), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(s), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(s), 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), nil
	case bool:
		return strconv.FormatBool(s), nil
	case time.Time:
		return s.Format(time.RFC3339), nil
	}
	return "", errUnsupportedType
}

// ConvertBool, değeri bool'a dönüştürür. Sıfırdan farklı sayılar true'dur.
func ConvertBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(b))
	case []byte:
		return strconv.ParseBool(strings.TrimSpace(string(b)))
	}

	n, err := ConvertInt64(v)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// ConvertTime, değeri time.Time'a dönüştürür.
func ConvertTime(v any) (time.Time, error) {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t, nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, errUnsupportedType
	}

	s = strings.TrimSpace(s)
	var lastErr error
	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ConvertBytes, değeri bağımsız bir []byte kopyasına dönüştürür.
// Sürücü buffer'ları bir sonraki Scan'de yeniden kullanılabildiği için
// kopya alınır.
func ConvertBytes(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		out := make([]byte, len(b))
		copy(out, b)
		return out, nil
	case string:
		return []byte(b), nil
	}
	return nil, errUnsupportedType
}
