package addressbook

// Table - неизменяемая версия таблицы адресов.
// После Build таблица только читается, поэтому её можно отдавать
// нескольким горутинам без блокировок.
type Table struct {
	records    map[string]Record
	collisions []string
}

// Build строит новую версию таблицы из списка записей.
// При совпадении нормализованных ключей побеждает более поздняя запись.
func Build(records []Record) *Table {
	t := &Table{
		records: make(map[string]Record, len(records)),
	}
	collided := make(map[string]struct{})
	for _, r := range records {
		key := Normalize(r.Address)
		if _, ok := t.records[key]; ok {
			if _, seen := collided[key]; !seen {
				collided[key] = struct{}{}
				t.collisions = append(t.collisions, key)
			}
		}
		t.records[key] = r
	}
	return t
}

// Lookup ищет запись по произвольному тексту (нормализуется внутри).
func (t *Table) Lookup(text string) (Record, bool) {
	if t == nil {
		return Record{}, false
	}
	r, ok := t.records[Normalize(text)]
	return r, ok
}

// Len возвращает количество ключей в таблице.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// Collisions возвращает ключи, которые встретились при построении больше одного раза.
// Каждый ключ входит в список один раз, в порядке первого повтора.
func (t *Table) Collisions() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.collisions))
	copy(out, t.collisions)
	return out
}
