// Package embedded содержит встроенные ресурсы приложения.
package embedded

import (
	_ "embed"
)

// IconIdle - иконка в состоянии ожидания (серая).
//
//go:embed icon_idle.png
var IconIdle []byte

// IconLookup - иконка во время поиска (синяя).
//
//go:embed icon_lookup.png
var IconLookup []byte

// IconError - иконка после неудачной перезагрузки адресов (красная).
//
//go:embed icon_error.png
var IconError []byte
