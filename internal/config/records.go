package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"addrmemo/internal/addressbook"
)

// ErrParse возвращается, если файл адресов не удалось прочитать или разобрать.
var ErrParse = errors.New("ошибка разбора файла адресов")

var validate = validator.New()

// LoadRecords читает файл адресов и возвращает записи в исходном порядке.
//
// Формат определяется по расширению: .yaml/.yml - YAML, всё остальное - JSON.
// Файл должен содержать список объектов с полями address, label, chain, description.
func LoadRecords(path string) ([]addressbook.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return ParseRecords(data, formatOf(path))
}

// Format - формат файла адресов.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// fileRecord - запись в том виде, в каком она лежит в файле.
// Указатели отличают отсутствующее поле от пустой строки: все четыре поля
// обязательны, но label, chain и description могут быть пустыми.
type fileRecord struct {
	Address     *string `json:"address" yaml:"address" validate:"required"`
	Label       *string `json:"label" yaml:"label" validate:"required"`
	Chain       *string `json:"chain" yaml:"chain" validate:"required"`
	Description *string `json:"description" yaml:"description" validate:"required"`
}

func (r fileRecord) record() addressbook.Record {
	return addressbook.Record{
		Address:     *r.Address,
		Label:       *r.Label,
		Chain:       *r.Chain,
		Description: *r.Description,
	}
}

// ParseRecords разбирает содержимое файла адресов.
func ParseRecords(data []byte, format Format) ([]addressbook.Record, error) {
	var raw []fileRecord

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrParse, err)
		}
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrParse, err)
		}
	}

	if raw == nil {
		// Пустой файл или "null" - это ошибка, а не пустая таблица.
		return nil, fmt.Errorf("%w: список адресов отсутствует", ErrParse)
	}

	records := make([]addressbook.Record, 0, len(raw))
	for i, fr := range raw {
		if err := validate.Struct(fr); err != nil {
			return nil, fmt.Errorf("%w: запись #%d: %w", ErrParse, i+1, err)
		}
		r := fr.record()
		// Адрес не только присутствует, но и не пуст.
		if err := validate.Struct(r); err != nil {
			return nil, fmt.Errorf("%w: запись #%d: %w", ErrParse, i+1, err)
		}
		records = append(records, r)
	}

	return records, nil
}
