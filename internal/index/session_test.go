package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_NilBeforeFirstUpload(t *testing.T) {
	session := NewSession()
	require.Nil(t, session.Current())
}

func TestSession_SwapReplacesWholeIndex(t *testing.T) {
	session := NewSession()

	first, err := Build(testChunks("old"), [][]float32{{1}})
	require.NoError(t, err)
	session.Swap(first)
	require.Same(t, first, session.Current())

	// a reader's snapshot survives a concurrent swap
	snapshot := session.Current()
	second, err := Build(testChunks("new"), [][]float32{{1}})
	require.NoError(t, err)
	session.Swap(second)

	require.Same(t, first, snapshot)
	require.Same(t, second, session.Current())
}
