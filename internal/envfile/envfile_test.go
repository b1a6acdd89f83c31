package envfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Basic(t *testing.T) {
	content := `# devkit secrets
API_URL=https://api.example.com
TOKEN=abc123

# Commented out
# OLD_TOKEN=xyz
EMPTY_VALUE=
QUOTED_DOUBLE="hello world"
QUOTED_SINGLE='single quoted'
`
	s := Parse(content)

	tests := map[string]string{
		"API_URL":       "https://api.example.com",
		"TOKEN":         "abc123",
		"EMPTY_VALUE":   "",
		"QUOTED_DOUBLE": "hello world",
		"QUOTED_SINGLE": "single quoted",
	}
	for k, want := range tests {
		got, ok := s.Get(k)
		require.True(t, ok, "key %s missing", k)
		assert.Equal(t, want, got, "key %s", k)
	}

	_, ok := s.Get("OLD_TOKEN")
	assert.False(t, ok, "commented-out key should not parse")

	assert.Equal(t, []string{"API_URL", "TOKEN", "EMPTY_VALUE", "QUOTED_DOUBLE", "QUOTED_SINGLE"}, s.Keys())
}

func TestParse_Empty(t *testing.T) {
	s := Parse("")
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Format())
}

func TestParse_MalformedLines(t *testing.T) {
	s := Parse("not an assignment\nA=1\n=nokey\n#B=2\n")
	assert.Equal(t, 1, s.Len())
	v, ok := s.Get("A")
	require.True(t, ok)
	assert.Equal(t, "1", v)
}

func TestParse_WhitespaceAroundSeparator(t *testing.T) {
	s := Parse("  KEY  =  value  \n")
	v, ok := s.Get("KEY")
	require.True(t, ok)
	assert.Equal(t, "value", v)
}

func TestParse_ValueContainingEquals(t *testing.T) {
	s := Parse("CONN=host=db;port=5432\n")
	v, ok := s.Get("CONN")
	require.True(t, ok)
	assert.Equal(t, "host=db;port=5432", v)
}

func TestParse_MismatchedQuotesKept(t *testing.T) {
	s := Parse("A=\"unclosed\nB='mixed\"\n")
	v, _ := s.Get("A")
	assert.Equal(t, `"unclosed`, v)
	v, _ = s.Get("B")
	assert.Equal(t, `'mixed"`, v)
}

func TestParse_DuplicateKeys(t *testing.T) {
	// Last occurrence wins on value, first occurrence wins on position.
	s := Parse("A=1\nB=2\nA=3\n")
	v, _ := s.Get("A")
	assert.Equal(t, "3", v)
	assert.Equal(t, []string{"A", "B"}, s.Keys())
	assert.Equal(t, "A=3\nB=2\n", s.Format())
}

func TestFormat_RoundTrip(t *testing.T) {
	// Comments, blanks, and canonical KEY=VALUE lines survive untouched.
	texts := []string{
		"A=1\n",
		"# header\nA=1\n\nB=2\n",
		"# only comments\n\n# more\n",
		"A=1\nB=\nC=plain\n",
	}
	for _, text := range texts {
		assert.Equal(t, text, Parse(text).Format(), "round-trip of %q", text)
	}
}

func TestFormat_UpdatePreservesComments(t *testing.T) {
	s := Parse("# note\nA=1\n")
	s.Set("A", "2")
	assert.Equal(t, "# note\nA=2\n", s.Format())
}

func TestFormat_NewKeysAppended(t *testing.T) {
	s := Parse("A=1\n")
	s.Set("Z", "9")
	assert.Equal(t, "A=1\nZ=9\n", s.Format())
}

func TestFormat_DeleteDropsOnlyTargetLine(t *testing.T) {
	s := Parse("A=1\nB=2\nC=3\n")
	require.True(t, s.Delete("B"))
	assert.Equal(t, "A=1\nC=3\n", s.Format())
}

func TestFormat_DeleteAbsentKey(t *testing.T) {
	s := Parse("A=1\n")
	assert.False(t, s.Delete("B"))
}

func TestFormat_MalformedLinesDropped(t *testing.T) {
	s := Parse("A=1\ngarbage line\nB=2\n")
	s.Set("B", "3")
	assert.Equal(t, "A=1\nB=3\n", s.Format())
}

func TestFormat_QuotesAddedWhenNeeded(t *testing.T) {
	s := Parse("A=plain\n")
	s.Set("A", "hello world")
	assert.Equal(t, "A=\"hello world\"\n", s.Format())
}

func TestFormat_NoOriginalEmitsInOrder(t *testing.T) {
	s := Parse("")
	s.Set("B", "2")
	s.Set("A", "1")
	assert.Equal(t, "B=2\nA=1\n", s.Format())
}

func TestFormat_MissingTrailingNewlineNormalized(t *testing.T) {
	s := Parse("A=1")
	assert.Equal(t, "A=1\n", s.Format())
}

func TestSet_Idempotent(t *testing.T) {
	s := Parse("# header\nA=1\n")
	s.Set("B", "2")
	first := s.Format()

	s2 := Parse(first)
	s2.Set("B", "2")
	assert.Equal(t, first, s2.Format())
}

func TestSet_ReportsAddedVsUpdated(t *testing.T) {
	s := Parse("A=1\n")
	assert.False(t, s.Set("A", "2"))
	assert.True(t, s.Set("B", "1"))
}

func TestEscapeValue(t *testing.T) {
	tests := map[string]string{
		"simple":        "simple",
		"hello world":   `"hello world"`,
		"a=b":           `"a=b"`,
		"tag#1":         `"tag#1"`,
		`say "hi" now`:  `"say \"hi\" now"`,
		"":              "",
		"under_scored1": "under_scored1",
	}
	for in, want := range tests {
		assert.Equal(t, want, EscapeValue(in), "EscapeValue(%q)", in)
	}
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("API_KEY"))
	assert.Error(t, ValidateKey(""))
	assert.Error(t, ValidateKey("BAD KEY"))
	assert.Error(t, ValidateKey("BAD=KEY"))
}

func TestLoad_MissingFileIsEmptyStore(t *testing.T) {
	s, err := Load(t.TempDir(), ".env")
	require.NoError(t, err)
	assert.Zero(t, s.Len())
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	content := "# prod secrets\nAPI_URL=https://api.example.com\nTOKEN=abc\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0600))

	s, err := Load(dir, ".env")
	require.NoError(t, err)
	s.Set("TOKEN", "def")
	require.NoError(t, s.Save(dir, ".env"))

	data, err := os.ReadFile(filepath.Join(dir, ".env"))
	require.NoError(t, err)
	assert.Equal(t, "# prod secrets\nAPI_URL=https://api.example.com\nTOKEN=def\n", string(data))
}

func TestSave_ReadBackEqualsFormat(t *testing.T) {
	dir := t.TempDir()
	s := Parse("")
	s.Set("A", "with space")
	require.NoError(t, s.Save(dir, ".env.production"))

	loaded, err := Load(dir, ".env.production")
	require.NoError(t, err)
	v, ok := loaded.Get("A")
	require.True(t, ok)
	assert.Equal(t, "with space", v)
}
