package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPages_CorruptInput(t *testing.T) {
	_, err := Pages([]byte("this is not a pdf"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "open pdf")
}

func TestPages_EmptyInput(t *testing.T) {
	_, err := Pages(nil)
	require.Error(t, err)
}
