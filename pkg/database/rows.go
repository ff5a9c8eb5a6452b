package database

import (
	"database/sql"
	"fmt"

	"github.com/biyonik/person-directory/pkg/database/rowmapper"
)

// -----------------------------------------------------------------------------
// RESULT HELPERS
// -----------------------------------------------------------------------------
// *sql.Rows'u rowmapper.Row'a çeviren yardımcılar. Kolon sırası cursor'ın
// döndürdüğü sırayla aynıdır; aynı isimli kolonlar korunur.
//
// Sürücüler []byte değerleri bir sonraki Next çağrısında yeniden
// kullanabildiği için []byte'lar kopyalanır.
// -----------------------------------------------------------------------------

// ScanRow, cursor'ın bulunduğu satırı okur. rows.Next() true döndükten
// sonra çağrılmalıdır.
func ScanRow(rows *sql.Rows) (rowmapper.Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns: %w", err)
	}

	values := make([]any, len(cols))
	pointers := make([]any, len(cols))
	for i := range values {
		pointers[i] = &values[i]
	}

	if err := rows.Scan(pointers...); err != nil {
		return nil, fmt.Errorf("failed to scan row: %w", err)
	}

	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = append([]byte(nil), b...)
		}
	}

	return rowmapper.NewRow(cols, values), nil
}

// ForEachRow, tüm satırları sırayla fn'e verir ve rows'u kapatır.
// fn hata döndürürse iterasyon durur ve o hata döner.
func ForEachRow(rows *sql.Rows, fn func(rowmapper.Row) error) error {
	defer rows.Close()

	for rows.Next() {
		row, err := ScanRow(rows)
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("row iteration failed: %w", err)
	}
	return nil
}

// CollectRows, tüm satırları okur ve rows'u kapatır.
func CollectRows(rows *sql.Rows) ([]rowmapper.Row, error) {
	var out []rowmapper.Row
	err := ForEachRow(rows, func(row rowmapper.Row) error {
		out = append(out, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// MapRows, satırları mapper ile T listesine çevirir ve rows'u kapatır.
func MapRows[T any](rows *sql.Rows, mapper *rowmapper.Mapper[T]) ([]T, error) {
	list := make([]T, 0)
	err := ForEachRow(rows, func(row rowmapper.Row) error {
		var err error
		list, err = mapper.MapIntoList(row, list)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
