// Package addressbook содержит таблицу известных адресов и её разделяемый handle.
package addressbook

import (
	"fmt"
	"strings"
)

// Record описывает один известный адрес из файла конфигурации.
type Record struct {
	Address     string `json:"address" yaml:"address" validate:"required"`
	Label       string `json:"label" yaml:"label"`
	Chain       string `json:"chain" yaml:"chain"`
	Description string `json:"description" yaml:"description"`
}

// Message возвращает текст уведомления для найденной записи.
func (r Record) Message() string {
	return fmt.Sprintf("%s in %s\n%s", r.Label, r.Chain, r.Description)
}

// Normalize приводит адрес к ключу поиска: удаляет все "0x",
// обрезает пробелы по краям, переводит в нижний регистр и убирает пробелы внутри.
//
// Одна и та же функция используется при построении таблицы и при поиске.
// Шаги повторяются до неподвижной точки: после удаления пробелов или "0x"
// может появиться новое вхождение ("0 x", "00xx", "0X").
func Normalize(s string) string {
	for {
		next := normalizeStep(s)
		if next == s {
			return next
		}
		s = next
	}
}

func normalizeStep(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "0x", "")
	s = strings.TrimSpace(s)
	return strings.ReplaceAll(s, " ", "")
}
