// internal/diagdata/data_test.go
package diagdata

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/diag-registry/internal/diag"
)

type mode uint8

const (
	modeIdle mode = iota
	modeBusy
	modeFault
)

func TestInteger_ConcurrentIncrementsNotLost(t *testing.T) {
	const (
		writers = 8
		perG    = 10000
		initial = 5
	)
	v := NewInteger(2000, "counter", initial)

	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := 0; k < perG; k++ {
				v.Inc()
			}
		}()
	}

	// concurrent reader must only observe written values
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			n := v.Get()
			assert.GreaterOrEqual(t, n, int32(initial))
			assert.LessOrEqual(t, n, int32(initial+writers*perG))
		}
	}()

	wg.Wait()
	<-done
	assert.Equal(t, int32(initial+writers*perG), v.Get())
}

func TestInteger_ResetAfterMutation(t *testing.T) {
	r := diag.NewRegistry(0)
	v := NewInteger(2001, "attempts", 3)
	require.NoError(t, r.Register(v.Source()))

	v.Add(40)
	v.Set(-7)
	v.Inc()

	require.NoError(t, r.Dispatch(2001, diag.Reset{}))

	get := &diag.Get{Buf: make([]byte, diag.IntSize)}
	require.NoError(t, r.Dispatch(2001, get))
	assert.Equal(t, diag.IntSize, get.N)

	n, err := DecodeInt(get.Buf)
	require.NoError(t, err)
	assert.Equal(t, int32(3), n)
}

func TestInteger_GetBufferTooSmallLeavesBufferUnchanged(t *testing.T) {
	v := NewInteger(2000, "free_memory", 123456)

	buf := []byte{0xDE, 0xAD}
	get := &diag.Get{Buf: buf}
	err := v.Command(v.Source(), get)

	require.ErrorIs(t, err, diag.ErrBufferTooSmall)
	assert.Equal(t, []byte{0xDE, 0xAD}, buf)
	assert.Zero(t, get.N)
}

func TestInteger_GetEncodesLittleEndian(t *testing.T) {
	v := NewInteger(2000, "neg", -2)
	buf := make([]byte, 8)
	get := &diag.Get{Buf: buf}

	require.NoError(t, v.Command(v.Source(), get))
	assert.Equal(t, 4, get.N)
	assert.True(t, bytes.Equal([]byte{0xFE, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0}, buf))
}

func TestInteger_DisableDropsUpdates(t *testing.T) {
	v := NewCounter(2002, "events")
	v.Inc()

	require.NoError(t, v.Command(v.Source(), diag.Disable{}))
	assert.False(t, v.Enabled())
	v.Inc()
	v.Set(99)
	assert.Equal(t, int32(1), v.Get())

	// reset still applies while disabled
	v.Reset()
	assert.Equal(t, int32(0), v.Get())

	require.NoError(t, v.Command(v.Source(), diag.Enable{}))
	v.Inc()
	assert.Equal(t, int32(1), v.Get())
}

func TestEnum_SetGetReset(t *testing.T) {
	e := NewEnum(2003, "mode", modeIdle)
	assert.Equal(t, diag.TypeInt, e.Source().Type)
	assert.Equal(t, diag.ID(2003), e.Source().ID)

	e.Set(modeFault)
	assert.Equal(t, modeFault, e.Get())

	get := &diag.Get{Buf: make([]byte, 4)}
	require.NoError(t, e.Command(e.Source(), get))
	n, err := DecodeInt(get.Buf)
	require.NoError(t, err)
	assert.Equal(t, int32(modeFault), n)

	require.NoError(t, e.Command(e.Source(), diag.Reset{}))
	assert.Equal(t, modeIdle, e.Get())

	require.NoError(t, e.Command(e.Source(), diag.Disable{}))
	e.Set(modeBusy)
	assert.Equal(t, modeIdle, e.Get())
}

func TestIntegerFunc_Commands(t *testing.T) {
	calls := 0
	f := NewIntegerFunc(2004, "computed", func() (int32, error) {
		calls++
		return 77, nil
	})

	assert.NoError(t, f.Command(f.Source(), diag.Enable{}))
	assert.NoError(t, f.Command(f.Source(), diag.Disable{}))
	assert.NoError(t, f.Command(f.Source(), diag.Reset{}))

	short := &diag.Get{Buf: make([]byte, 3)}
	assert.ErrorIs(t, f.Command(f.Source(), short), diag.ErrBufferTooSmall)
	assert.Zero(t, calls)

	get := &diag.Get{Buf: make([]byte, 4)}
	require.NoError(t, f.Command(f.Source(), get))
	n, err := DecodeInt(get.Buf)
	require.NoError(t, err)
	assert.Equal(t, int32(77), n)
	assert.Equal(t, 1, calls)
}

func TestIntegerFunc_GetterErrorPropagates(t *testing.T) {
	boom := errors.New("gauge offline")
	f := NewIntegerFunc(2005, "broken", func() (int32, error) { return 0, boom })

	buf := []byte{1, 2, 3, 4}
	err := f.Command(f.Source(), &diag.Get{Buf: buf})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []byte{1, 2, 3, 4}, buf)
}
