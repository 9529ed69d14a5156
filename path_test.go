package jsonedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathStringRoot(t *testing.T) {
	assert.Equal(t, "$", Path{}.String())
	assert.Equal(t, "$", Path(nil).String())
}

func TestPathStringBracketNotation(t *testing.T) {
	p := MustPath("key", 0, "nested")
	assert.Equal(t, `$["key"][0]["nested"]`, p.String())
	// Stable across calls.
	assert.Equal(t, p.String(), p.String())
}

func TestPathStringEscapesKeys(t *testing.T) {
	p := MustPath(`say "hi"`, "a<b", "line\nbreak")
	assert.Equal(t, `$["say \"hi\""]["a<b"]["line\nbreak"]`, p.String())
}

func TestPathStringNumericKeyIsQuoted(t *testing.T) {
	assert.Equal(t, `$["0"]`, Path{Key("0")}.String())
	assert.Equal(t, `$[0]`, Path{Index(0)}.String())
}

func TestIndexPanicsOnNegative(t *testing.T) {
	assert.Panics(t, func() { Index(-1) })
	assert.Panics(t, func() { MustPath(1.5) })
}

func TestPointerRoundTrip(t *testing.T) {
	p := MustPath("a/b", "m~n", 3, "")
	ptr := p.Pointer()
	assert.Equal(t, "/a~1b/m~0n/3/", ptr)

	back, err := ParsePointer(ptr)
	require.NoError(t, err)
	assert.True(t, p.Equal(back), "got %s", back)
}

func TestParsePointer(t *testing.T) {
	p, err := ParsePointer("")
	require.NoError(t, err)
	assert.Len(t, p, 0)

	p, err = ParsePointer("/items/10/01")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.False(t, p[0].IsIndex())
	assert.True(t, p[1].IsIndex())
	assert.Equal(t, 10, p[1].Index())
	assert.False(t, p[2].IsIndex(), "leading zero keeps the token a key")
	assert.Equal(t, "01", p[2].Key())

	_, err = ParsePointer("items")
	assert.Error(t, err)
	_, err = ParsePointer("/items/-")
	assert.Error(t, err)
}

func TestPathChildAndParentDoNotAlias(t *testing.T) {
	base := make(Path, 1, 4)
	base[0] = Key("a")
	x := base.Child(Key("x"))
	y := base.Child(Key("y"))
	assert.Equal(t, `$["a"]["x"]`, x.String())
	assert.Equal(t, `$["a"]["y"]`, y.String())
	assert.True(t, x.Parent().Equal(base))
	assert.Equal(t, "$", Path{}.Parent().String())
}
