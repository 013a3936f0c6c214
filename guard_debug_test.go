//go:build flstrdebug

package flstring

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTracker_SequentialUseIsClean(t *testing.T) {
	s, err := FromString("tracked")
	require.NoError(t, err)
	assert.Equal(t, 7, s.Len())
	require.NoError(t, s.AppendByte('!'))
	assert.Equal(t, "tracked!", s.String())
	s.Release()
}

func TestAccessTracker_ConcurrentReadsAllowed(t *testing.T) {
	s, err := FromString("readers")
	require.NoError(t, err)
	defer s.Release()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = s.Len()
				_ = s.Byte(0)
			}
		}()
	}
	wg.Wait()
}

func TestAccessTracker_WriteDuringReadPanics(t *testing.T) {
	var tr accessTracker
	tr.beginRead()
	defer tr.endRead()

	assert.Panics(t, func() {
		tr.beginWrite()
	})
}

func TestAccessTracker_ReadDuringWritePanics(t *testing.T) {
	var tr accessTracker
	tr.beginWrite()
	defer tr.endWrite()

	assert.Panics(t, func() {
		tr.beginRead()
	})
}

func TestAccessTracker_WriteDuringWritePanics(t *testing.T) {
	var tr accessTracker
	tr.beginWrite()
	defer tr.endWrite()

	assert.Panics(t, func() {
		tr.beginWrite()
	})
}

func TestAccessTracker_ReleasesState(t *testing.T) {
	var tr accessTracker
	tr.beginWrite()
	tr.endWrite()
	tr.beginRead()
	tr.beginRead()
	tr.endRead()
	tr.endRead()
	tr.beginWrite()
	tr.endWrite()
}
