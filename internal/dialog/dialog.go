// Package dialog предоставляет GUI диалоги.
package dialog

import (
	"fmt"
	"strings"

	"github.com/ncruces/zenity"

	"addrmemo/internal/i18n"
)

// AboutInfo - что показывается в окне "О программе".
type AboutInfo struct {
	Hotkey  string
	Path    string
	Records int
}

// Text возвращает текст окна "О программе".
func (a AboutInfo) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", i18n.T("about_hotkey"), a.Hotkey)
	fmt.Fprintf(&b, "%s: %s\n", i18n.T("about_file"), a.Path)
	fmt.Fprintf(&b, "%s: %d", i18n.T("about_records"), a.Records)
	return b.String()
}

// ShowAbout показывает окно "О программе".
func ShowAbout(info AboutInfo) {
	ShowInfo(i18n.T("about_title"), info.Text())
}

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title))
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title))
}
