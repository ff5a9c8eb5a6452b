package rowmapper

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertInt64(t *testing.T) {
	ok := map[string]struct {
		in   any
		want int64
	}{
		"int64":          {int64(-5), -5},
		"int":            {7, 7},
		"uint8":          {uint8(200), 200},
		"integral float": {float64(12), 12},
		"bool":           {true, 1},
		"string":         {" 42 ", 42},
		"bytes":          {[]byte("-3"), -3},
	}
	for name, tc := range ok {
		got, err := ConvertInt64(tc.in)
		require.NoError(t, err, name)
		assert.Equal(t, tc.want, got, name)
	}

	bad := map[string]any{
		"fraction":   2.5,
		"nan":        math.NaN(),
		"text":       "seven",
		"uint64 max": uint64(math.MaxUint64),
		"time":       time.Now(),
		"struct":     struct{}{},
	}
	for name, in := range bad {
		_, err := ConvertInt64(in)
		assert.Error(t, err, name)
	}
}

func TestConvertInt_Overflow(t *testing.T) {
	if math.MaxInt == math.MaxInt64 {
		t.Skip("int 64 bit; int64 değerleri taşmaz")
	}
	_, err := ConvertInt(int64(math.MaxInt64))
	assert.Error(t, err)
}

func TestConvertFloat64(t *testing.T) {
	got, err := ConvertFloat64([]byte("1.25"))
	require.NoError(t, err)
	assert.Equal(t, 1.25, got)

	got, err = ConvertFloat64(int64(3))
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)

	_, err = ConvertFloat64(true)
	assert.Error(t, err)
	_, err = ConvertFloat64("abc")
	assert.Error(t, err)
}

func TestConvertString(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"x", "x"},
		{[]byte("y"), "y"},
		{int64(10), "10"},
		{int8(-8), "-8"},
		{int16(-16), "-16"},
		{uint(7), "7"},
		{uint8(8), "8"},
		{uint16(16), "16"},
		{uint32(32), "32"},
		{1.5, "1.5"},
		{false, "false"},
		{time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC), "2020-01-02T03:04:05Z"},
	}
	for _, tc := range cases {
		got, err := ConvertString(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}

	_, err := ConvertString([]int{1})
	assert.Error(t, err)
}

func TestConvertBool(t *testing.T) {
	for _, in := range []any{true, int64(1), int64(-2), "true", []byte("1")} {
		got, err := ConvertBool(in)
		require.NoError(t, err)
		assert.True(t, got, "%v", in)
	}

	got, err := ConvertBool(int64(0))
	require.NoError(t, err)
	assert.False(t, got)

	_, err = ConvertBool("maybe")
	assert.Error(t, err)
}

func TestConvertTime(t *testing.T) {
	want := time.Date(2023, 5, 6, 0, 0, 0, 0, time.UTC)

	for _, in := range []any{want, "2023-05-06", []byte("2023-05-06T00:00:00Z"), "2023-05-06 00:00:00"} {
		got, err := ConvertTime(in)
		require.NoError(t, err)
		assert.True(t, want.Equal(got), "%v", in)
	}

	_, err := ConvertTime("yesterday")
	assert.Error(t, err)
	_, err = ConvertTime(int64(1))
	assert.Error(t, err)
}

func TestIsNull(t *testing.T) {
	assert.True(t, IsNull(nil))
	assert.True(t, IsNull(sql.NullString{}))
	assert.True(t, IsNull(sql.NullInt64{}))
	assert.False(t, IsNull(sql.NullString{String: "", Valid: true}))
	assert.False(t, IsNull(""))
	assert.False(t, IsNull(int64(0)))
}

func TestRow_Helpers(t *testing.T) {
	r := NewRow([]string{"PersonId", "FirstName", "PersonId"}, []any{int64(1), []byte("Ada"), int64(2)})

	v, ok := r.Get("PersonId")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	_, ok = r.Get("Missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"PersonId", "FirstName", "PersonId"}, r.Names())
	assert.Equal(t, "{PersonId: 1, FirstName: Ada, PersonId: 2}", r.String())

	assert.Len(t, NewRow([]string{"a", "b"}, []any{1}), 1)
	assert.Equal(t, "{A: NULL}", Row{{Name: "A"}}.String())
}
