// -----------------------------------------------------------------------------
// Row - Sorgu Sonucundaki Tek Bir Kayıt
// -----------------------------------------------------------------------------
// Bu dosya, RowMapper'ın girdi olarak kabul ettiği satır soyutlamasını içerir.
// Row; kolon adı ve değer çiftlerinden oluşan sıralı bir listedir. Veritabanı
// cursor'ının döndürdüğü sırayı korur, bu sayede aynı isimli kolonlar
// geldiğinde "ilk gelen kazanır" kuralı uygulanabilir.
//
// Değerler: nil, tamsayılar, float'lar, string, []byte, bool, time.Time
// veya database/sql'in Null* sarmalayıcıları olabilir.
// -----------------------------------------------------------------------------

package rowmapper

import (
	"fmt"
	"strings"
)

// Column, bir satırdaki tek bir kolon adı/değer çiftidir.
type Column struct {
	Name  string
	Value any
}

// Row, bir sonuç kümesi kaydının sıralı kolon listesidir.
type Row []Column

// NewRow, paralel kolon adı ve değer dizilerinden bir Row üretir.
// *sql.Rows.Columns() çıktısı ile Scan edilen değerleri birleştirmek için
// kullanılır. Uzunluklar farklıysa kısa olan belirleyicidir.
func NewRow(names []string, values []any) Row {
	n := len(names)
	if len(values) < n {
		n = len(values)
	}

	row := make(Row, n)
	for i := 0; i < n; i++ {
		row[i] = Column{Name: names[i], Value: values[i]}
	}
	return row
}

// Get, verilen isimdeki ilk kolonun değerini döndürür.
func (r Row) Get(name string) (any, bool) {
	for _, col := range r {
		if col.Name == name {
			return col.Value, true
		}
	}
	return nil, false
}

// Names, kolon adlarını satırdaki sırayla döndürür.
func (r Row) Names() []string {
	names := make([]string, len(r))
	for i, col := range r {
		names[i] = col.Name
	}
	return names
}

// String, satırı log'larda okunabilir biçimde gösterir: {PersonId: 7, ...}
func (r Row) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, col := range r {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(col.Name)
		b.WriteString(": ")
		if col.Value == nil {
			b.WriteString("NULL")
			continue
		}
		if raw, ok := col.Value.([]byte); ok {
			b.WriteString(string(raw))
			continue
		}
		b.WriteString(fmt.Sprint(col.Value))
	}
	b.WriteString("}")
	return b.String()
}
