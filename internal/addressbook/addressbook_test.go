package addressbook

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0x AbC ", "abc"},
		{"0X 0x Ab C", "abc"},
		{"  0xabc123 ", "abc123"},
		{"0xAbC123", "abc123"},
		{"\t0xDEF999\n", "def999"},
		{"00xx", ""},
		{"0 x1", "1"},
		{"", ""},
		{"   ", ""},
		{"Bc1q 9Z", "bc1q9z"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"0x AbC ", "0X 0x Ab C", "00xx", "0 x 0 x", "0\t0x x", " 0X0X0x ",
		"Привет 0xМир", "0x", "x0", "0 0 x x", "İ0x",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestBuild_LastWins(t *testing.T) {
	first := Record{Address: "0xABC", Label: "first", Chain: "ETH"}
	second := Record{Address: " abc ", Label: "second", Chain: "BSC"}

	table := Build([]Record{first, second})

	got, ok := table.Lookup("0xabc")
	require.True(t, ok)
	assert.Equal(t, "second", got.Label)
	assert.Equal(t, 1, table.Len())
	assert.Equal(t, []string{"abc"}, table.Collisions())
}

func TestBuild_CollisionReportedOnce(t *testing.T) {
	table := Build([]Record{
		{Address: "0xABC", Label: "first"},
		{Address: "abc", Label: "second"},
		{Address: "0x def", Label: "other"},
		{Address: "ABC", Label: "third"},
		{Address: "def", Label: "fourth"},
	})

	got, ok := table.Lookup("abc")
	require.True(t, ok)
	assert.Equal(t, "third", got.Label)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"abc", "def"}, table.Collisions())
}

func TestBuild_RoundTrip(t *testing.T) {
	records := []Record{
		{Address: "0xAbC123", Label: "Treasury", Chain: "ETH", Description: "Main fund"},
		{Address: "0x DeF 456", Label: "Hot wallet", Chain: "ARB", Description: "Ops"},
		{Address: "bc1qxyz", Label: "Cold", Chain: "BTC", Description: ""},
	}
	table := Build(records)

	for _, r := range records {
		got, ok := table.Lookup(Normalize(r.Address))
		require.True(t, ok, "address %q", r.Address)
		if diff := cmp.Diff(r, got); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	}
	assert.Empty(t, table.Collisions())
}

func TestTable_NilSafe(t *testing.T) {
	var table *Table
	_, ok := table.Lookup("abc")
	assert.False(t, ok)
	assert.Zero(t, table.Len())
	assert.Nil(t, table.Collisions())
}

func TestRecord_Message(t *testing.T) {
	r := Record{Address: "0xAbC123", Label: "Treasury", Chain: "ETH", Description: "Main fund"}
	assert.Equal(t, "Treasury in ETH\nMain fund", r.Message())
}

func TestHandle_Swap(t *testing.T) {
	old := Build([]Record{{Address: "aa", Label: "old"}})
	h := NewHandle(old)

	snapshot := h.Read()
	next := Build([]Record{{Address: "bb", Label: "new"}})
	prev := h.Swap(next)

	assert.Same(t, old, prev)
	assert.Same(t, next, h.Read())

	// Снимок, взятый до Swap, остаётся целым.
	r, ok := snapshot.Lookup("aa")
	require.True(t, ok)
	assert.Equal(t, "old", r.Label)

	_, ok = h.Lookup("aa")
	assert.False(t, ok)
}

func TestHandle_SwapNilIgnored(t *testing.T) {
	initial := Build([]Record{{Address: "aa"}})
	h := NewHandle(initial)
	h.Swap(nil)
	assert.Same(t, initial, h.Read())

	empty := NewHandle(nil)
	require.NotNil(t, empty.Read())
	assert.Zero(t, empty.Read().Len())
}

func TestHandle_ConcurrentReadsNeverSeeEmpty(t *testing.T) {
	makeTable := func(gen int) *Table {
		records := make([]Record, 50)
		for i := range records {
			records[i] = Record{Address: fmt.Sprintf("0x%04d", i), Label: fmt.Sprintf("gen-%d", gen)}
		}
		return Build(records)
	}

	h := NewHandle(makeTable(0))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				table := h.Read()
				if table.Len() != 50 {
					errs <- fmt.Sprintf("torn table: %d entries", table.Len())
					return
				}
				// Все записи одного снимка принадлежат одному поколению.
				first, _ := table.Lookup("0000")
				last, _ := table.Lookup("0049")
				if first.Label != last.Label {
					errs <- fmt.Sprintf("mixed generations: %s / %s", first.Label, last.Label)
					return
				}
			}
		}()
	}

	for gen := 1; gen <= 200; gen++ {
		h.Swap(makeTable(gen))
	}
	close(stop)
	wg.Wait()
	close(errs)

	for msg := range errs {
		t.Error(msg)
	}
}
