package dialog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"addrmemo/internal/i18n"
)

func TestAboutInfo_Text(t *testing.T) {
	i18n.SetLanguage(i18n.EN)
	t.Cleanup(func() { i18n.SetLanguage(i18n.EN) })

	info := AboutInfo{Hotkey: "super+j", Path: "/home/u/config/address.json", Records: 3}
	assert.Equal(t, "Hotkey: super+j\nAddress file: /home/u/config/address.json\nAddresses: 3", info.Text())
}
