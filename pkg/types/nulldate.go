package types

import "database/sql/driver"

// NullDate nullable-вариант Date для сканирования опциональных колонок
type NullDate struct {
	Date  Date
	Valid bool
}

// Ptr возвращает *Date или nil
func (n NullDate) Ptr() *Date {
	if !n.Valid {
		return nil
	}
	d := n.Date
	return &d
}

// FromDatePtr создает NullDate из указателя
func FromDatePtr(d *Date) NullDate {
	if d == nil {
		return NullDate{}
	}
	return NullDate{Date: *d, Valid: true}
}

// Scan реализует sql.Scanner
func (n *NullDate) Scan(src interface{}) error {
	if src == nil {
		n.Date, n.Valid = Date{}, false
		return nil
	}
	if err := n.Date.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}

// Value реализует driver.Valuer
func (n NullDate) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.Date.Value()
}
