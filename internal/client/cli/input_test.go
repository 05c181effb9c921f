package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetText(t *testing.T) {
	var out bytes.Buffer
	got, err := getText(rdr("  hello world \n"), &out, "Name")
	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Equal(t, "Name: ", out.String())
}

func TestGetText_LastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	got, err := getText(rdr("lastline"), &out, "Name")
	require.NoError(t, err)
	assert.Equal(t, "lastline", got)

	_, err = getText(rdr(""), &out, "Name")
	assert.Error(t, err)
}

func TestGetTextDefault(t *testing.T) {
	var out bytes.Buffer
	got, err := getTextDefault(rdr("\n"), &out, "Title", "old")
	require.NoError(t, err)
	assert.Equal(t, "old", got)
	assert.Equal(t, "Title [old]: ", out.String())

	got, err = getTextDefault(rdr("new\n"), &out, "Title", "old")
	require.NoError(t, err)
	assert.Equal(t, "new", got)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	got, err := getMultiline(rdr("a\nb\n\nrest\n"), &out, "Content")
	require.NoError(t, err)
	assert.Equal(t, "a\nb", got)

	got, err = getMultiline(rdr("only"), &out, "Content")
	require.NoError(t, err)
	assert.Equal(t, "only", got)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("s3cret"), nil }
	var out bytes.Buffer
	pw, err := getPassword(&out)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(pw))
	assert.True(t, strings.HasPrefix(out.String(), "Password: "))

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = getPassword(&out)
	assert.Error(t, err)
}

func TestConfirmAndSplitList(t *testing.T) {
	var out bytes.Buffer
	assert.True(t, confirm(rdr("y\n"), &out, "Sure?"))
	assert.True(t, confirm(rdr("YES\n"), &out, "Sure?"))
	assert.False(t, confirm(rdr("\n"), &out, "Sure?"))
	assert.False(t, confirm(rdr(""), &out, "Sure?"))

	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Nil(t, splitList(""))
}
