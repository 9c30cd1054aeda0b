// Package i18n provides internationalization support.
package i18n

import "sync"

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	EN: {
		// App
		"app_name":    "AddrMemo",
		"app_tooltip": "AddrMemo - address lookup",

		// Tray menu
		"tray_ready":              "Ready",
		"tray_records":            "Addresses loaded",
		"tray_notifications":      "Notifications",
		"tray_notifications_hint": "Show lookup results",
		"tray_reload":             "Reload addresses",
		"tray_reload_hint":        "Re-read the address file now",
		"tray_about":              "About...",
		"tray_about_hint":         "Hotkey and address file",
		"tray_quit":               "Quit",
		"tray_quit_hint":          "Close the application",

		// Lookup
		"lookup_not_found": "Address Not Found",

		// Notifications
		"notify_error":    "Error",
		"notify_ready":    "AddrMemo is ready",
		"notify_reloaded": "Addresses reloaded",

		// About dialog
		"about_title":   "About AddrMemo",
		"about_hotkey":  "Hotkey",
		"about_file":    "Address file",
		"about_records": "Addresses",

		// Errors
		"error_startup_title":   "AddrMemo cannot start",
		"error_reload":          "Address file is invalid, previous addresses kept",
		"error_hotkey_register": "Failed to register hotkey",
	},

	RU: {
		// App
		"app_name":    "AddrMemo",
		"app_tooltip": "AddrMemo - поиск адресов",

		// Tray menu
		"tray_ready":              "Готов к работе",
		"tray_records":            "Загружено адресов",
		"tray_notifications":      "Уведомления",
		"tray_notifications_hint": "Показывать результат поиска",
		"tray_reload":             "Перечитать адреса",
		"tray_reload_hint":        "Загрузить файл адресов заново",
		"tray_about":              "О программе...",
		"tray_about_hint":         "Горячая клавиша и файл адресов",
		"tray_quit":               "Выход",
		"tray_quit_hint":          "Закрыть приложение",

		// Lookup
		"lookup_not_found": "Адрес не найден",

		// Notifications
		"notify_error":    "Ошибка",
		"notify_ready":    "AddrMemo готов к работе",
		"notify_reloaded": "Адреса перезагружены",

		// About dialog
		"about_title":   "О программе AddrMemo",
		"about_hotkey":  "Горячая клавиша",
		"about_file":    "Файл адресов",
		"about_records": "Адресов",

		// Errors
		"error_startup_title":   "AddrMemo не может запуститься",
		"error_reload":          "Файл адресов повреждён, оставлены прежние адреса",
		"error_hotkey_register": "Не удалось зарегистрировать горячую клавишу",
	},
}

// T returns the translation for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if strings, ok := translations[current]; ok {
		if s, ok := strings[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language. Unknown languages fall back to EN.
func SetLanguage(lang Language) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := translations[lang]; !ok {
		lang = EN
	}
	current = lang
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{EN, RU}
}
