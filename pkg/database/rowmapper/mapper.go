// -----------------------------------------------------------------------------
// RowMapper - Tablo Tabanlı Satır Eşleyici
// -----------------------------------------------------------------------------
// Bu paket, bir sonuç satırındaki kolonları bir struct'ın alanlarına kopyalar.
// Reflection kullanmaz: her hedef tip için "kolon adı → setter" tablosu
// bir kere kurulur ve tekrar tekrar kullanılır.
//
// Kurallar:
//   - Tabloda karşılığı olmayan kolonlar sessizce atlanır (non-strict).
//   - NULL değerli kolonlar alanı olduğu gibi bırakır.
//   - Değer alanın tipine dönüştürülemezse *ConversionError döner ve hedef
//     hiç değişmemiş olur (satır bazında ya hep ya hiç).
//   - Aynı isimde birden fazla kolon varsa ilk gelen kazanır.
//
// Mapper kurulduktan sonra değişmez; birden fazla goroutine'den aynı anda
// kullanılabilir.
//
// Örnek:
//
//	var PersonMapper = rowmapper.New(
//	    func() Person { return Person{} },
//	    rowmapper.Int("PersonId", func(p *Person, v int) { p.PersonID = v }),
//	    rowmapper.String("FirstName", func(p *Person, v string) { p.FirstName = v }),
//	)
//
//	person, err := PersonMapper.MapNew(row)
// -----------------------------------------------------------------------------

package rowmapper

import (
	"fmt"
	"strings"
)

// Mapper, T tipi için kurulmuş kolon → alan eşleme tablosudur.
type Mapper[T any] struct {
	factory  func() T
	fields   []Field[T]
	index    map[string]int
	foldCase bool
}

// New, verilen factory ve alan tanımlarıyla yeni bir Mapper kurar.
//
// factory nil ise T'nin sıfır değeri kullanılır. Aynı kolon için iki alan
// tanımlamak programlama hatasıdır ve panic'e yol açar.
func New[T any](factory func() T, fields ...Field[T]) *Mapper[T] {
	return build(factory, fields, false)
}

func build[T any](factory func() T, fields []Field[T], foldCase bool) *Mapper[T] {
	if factory == nil {
		factory = func() T {
			var zero T
			return zero
		}
	}

	m := &Mapper[T]{
		factory:  factory,
		fields:   make([]Field[T], len(fields)),
		index:    make(map[string]int, len(fields)),
		foldCase: foldCase,
	}
	copy(m.fields, fields)

	for i, f := range m.fields {
		if f.Column == "" || f.set == nil {
			panic(fmt.Sprintf("rowmapper: field #%d has no column or setter", i))
		}
		key := m.key(f.Column)
		if _, dup := m.index[key]; dup {
			panic(fmt.Sprintf("rowmapper: column %q mapped twice", f.Column))
		}
		m.index[key] = i
	}

	return m
}

// CaseInsensitive, kolon adlarını büyük/küçük harf duyarsız karşılaştıran
// bir kopya döndürür. Tanımlanmamış identifier'ları küçük harfe çeviren
// kaynaklar (Postgres gibi) için kullanılır.
func (m *Mapper[T]) CaseInsensitive() *Mapper[T] {
	return build(m.factory, m.fields, true)
}

// Columns, tabloda tanımlı kolon adlarını tanım sırasıyla döndürür.
func (m *Mapper[T]) Columns() []string {
	cols := make([]string, len(m.fields))
	for i, f := range m.fields {
		cols[i] = f.Column
	}
	return cols
}

func (m *Mapper[T]) key(column string) string {
	if m.foldCase {
		return strings.ToLower(column)
	}
	return column
}

// MapInto, satırdaki eşleşen ve NULL olmayan kolonları target'a yazar.
//
// Dönüşüm hatasında target'a dokunulmaz; değişiklikler önce bir kopya
// üzerinde yapılır, başarılı olursa target'a aktarılır.
func (m *Mapper[T]) MapInto(row Row, target *T) error {
	if target == nil {
		return ErrNilTarget
	}

	staged := *target
	seen := make([]bool, len(m.fields))

	for _, col := range row {
		i, ok := m.index[m.key(col.Name)]
		if !ok || seen[i] {
			continue
		}
		seen[i] = true

		value, err := unwrap(col.Value)
		if err != nil {
			return &ConversionError{Column: col.Name, Value: col.Value, Target: m.fields[i].target, Err: err}
		}
		if value == nil {
			continue
		}

		if err := m.fields[i].set(&staged, value); err != nil {
			return &ConversionError{Column: col.Name, Value: col.Value, Target: m.fields[i].target, Err: err}
		}
	}

	*target = staged
	return nil
}

// MapNew, factory ile yeni bir değer üretir ve satırı üzerine uygular.
func (m *Mapper[T]) MapNew(row Row) (T, error) {
	item := m.factory()
	if err := m.MapInto(row, &item); err != nil {
		var zero T
		return zero, err
	}
	return item, nil
}

// MapIntoList, satırdan yeni bir değer üretip listenin sonuna ekler ve
// genişletilmiş listeyi döndürür. Hata durumunda liste aynen geri döner.
func (m *Mapper[T]) MapIntoList(row Row, list []T) ([]T, error) {
	item, err := m.MapNew(row)
	if err != nil {
		return list, err
	}
	return append(list, item), nil
}

// MapAll, satırları sırasıyla eşler. İlk hatada durur.
func (m *Mapper[T]) MapAll(rows []Row) ([]T, error) {
	list := make([]T, 0, len(rows))
	for _, row := range rows {
		var err error
		if list, err = m.MapIntoList(row, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}
