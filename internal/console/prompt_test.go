package console_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timecost/internal/console"
)

func TestPromptRegionReadsFirstToken(t *testing.T) {
	var out bytes.Buffer
	code, err := console.PromptRegion(strings.NewReader("  qc ontario\n"), &out, []string{"AB", "QC"})
	require.NoError(t, err)
	require.Equal(t, "QC", code)
	require.Equal(t, "Please enter your province/territory of residence:\nAB, QC\n", out.String())
}

func TestPromptRegionEmptyInput(t *testing.T) {
	var out bytes.Buffer
	code, err := console.PromptRegion(strings.NewReader(""), &out, nil)
	require.NoError(t, err)
	require.Empty(t, code)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty closed") }

func TestPromptRegionReadError(t *testing.T) {
	var out bytes.Buffer
	_, err := console.PromptRegion(failingReader{}, &out, nil)
	require.ErrorContains(t, err, "tty closed")
}
