package notify

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	title, message string
}

func recorder(out *[]sent, err error) Sender {
	return func(title, message, _ string) error {
		*out = append(*out, sent{title, message})
		return err
	}
}

func TestShow(t *testing.T) {
	var got []sent
	n := NewWithSender(true, recorder(&got, nil))

	require.NoError(t, n.Show("0xabc123", "Treasury in ETH\nMain fund"))
	assert.Equal(t, []sent{{"0xabc123", "Treasury in ETH\nMain fund"}}, got)
}

func TestShow_Disabled(t *testing.T) {
	var got []sent
	n := NewWithSender(false, recorder(&got, nil))

	require.NoError(t, n.Show("t", "m"))
	assert.Empty(t, got)

	assert.True(t, n.Toggle())
	require.NoError(t, n.Show("t", "m"))
	assert.Len(t, got, 1)
}

func TestShow_Error(t *testing.T) {
	var got []sent
	n := NewWithSender(true, recorder(&got, errors.New("dbus unavailable")))

	err := n.Show("t", "m")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotify)
}

func TestInfo_Truncates(t *testing.T) {
	var got []sent
	n := NewWithSender(true, recorder(&got, nil))

	n.Info(strings.Repeat("a", 150))
	require.Len(t, got, 1)
	assert.Equal(t, appName, got[0].title)
	assert.Len(t, got[0].message, 103)
}

func TestInfo_TruncatesByRunes(t *testing.T) {
	var got []sent
	n := NewWithSender(true, recorder(&got, nil))

	n.Info(strings.Repeat("ж", 150))
	require.Len(t, got, 1)
	assert.True(t, utf8.ValidString(got[0].message))
	assert.Equal(t, strings.Repeat("ж", 100)+"...", got[0].message)

	short := strings.Repeat("ж", 100)
	n.Info(short)
	require.Len(t, got, 2)
	assert.Equal(t, short, got[1].message)
}
