package common_test

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timecost/internal/common"
)

func TestAppErrorWrapsCause(t *testing.T) {
	err := common.NewAppError(common.CodeCatalogDecode, "decode catalog page", 0, io.ErrUnexpectedEOF).WithPage(3)

	require.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	require.True(t, common.IsAppError(err))
	require.Equal(t, common.CodeCatalogDecode, common.ErrorCode(err))
	require.Equal(t, "decode catalog page (page 3): unexpected EOF", err.Error())
}

func TestErrorCodeWithoutAppError(t *testing.T) {
	require.Empty(t, common.ErrorCode(errors.New("plain")))
	require.False(t, common.IsAppError(nil))
}

func TestParseNumbers(t *testing.T) {
	n, err := common.ParseInt64(" 7 ", 1)
	require.NoError(t, err)
	require.EqualValues(t, 7, n)

	n, err = common.ParseInt64("", 16)
	require.NoError(t, err)
	require.EqualValues(t, 16, n)

	_, err = common.ParseInt64("abc", 1)
	require.Error(t, err)

	f, err := common.ParseFloat("2.5", 0)
	require.NoError(t, err)
	require.Equal(t, 2.5, f)

	f, err = common.ParseFloat("  ", 0.75)
	require.NoError(t, err)
	require.Equal(t, 0.75, f)

	_, err = common.ParseFloat("nope", 0.75)
	require.Error(t, err)
}
