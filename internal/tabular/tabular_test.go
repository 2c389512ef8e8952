package tabular

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	in := "TeamName,AdjOE,seed\nDuke,119.10,1\nYale,108.0,\n"
	f, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"TeamName", "AdjOE", "seed"}, f.Columns)
	assert.Equal(t, [][]string{{"Duke", "119.10", "1"}, {"Yale", "108.0", ""}}, f.Rows)
	assert.Equal(t, 1, f.Index("AdjOE"))
	assert.Equal(t, -1, f.Index("Season"))
}

func TestDecode_StripsByteOrderMark(t *testing.T) {
	in := "\ufeffTeamName,seed\nDuke,1\n"
	f, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"TeamName", "seed"}, f.Columns)
	assert.Equal(t, 0, f.Index("TeamName"))
	assert.Equal(t, [][]string{{"Duke", "1"}}, f.Rows)
}

func TestDecode_KeepsMissingMarkersVerbatim(t *testing.T) {
	in := "TeamName,Notes,Coach\nDuke,NA,<nil>\nYale,,x\n"
	f, err := Decode(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, [][]string{{"Duke", "NA", "<nil>"}, {"Yale", "", "x"}}, f.Rows)
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err, "ragged row")

	_, err = Decode(strings.NewReader("a,b\n"))
	assert.Error(t, err, "header only")

	_, err = Decode(strings.NewReader(""))
	assert.Error(t, err, "empty")
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	assert.True(t, os.IsNotExist(err))
}

func TestWrite(t *testing.T) {
	var b strings.Builder
	err := Write(&b, []string{"Team1", "Team2"}, [][]string{{"Texas A&M", "St. Mary's, CA"}})
	require.NoError(t, err)
	assert.Equal(t, "Team1,Team2\nTexas A&M,\"St. Mary's, CA\"\n", b.String())
}

func TestStageCommit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "processed")
	path := filepath.Join(dir, "features_2019-2019.csv")

	s, err := Stage(path, []string{"a"}, [][]string{{"1"}})
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing at final path before Commit")

	require.NoError(t, s.Commit())
	s.Discard()

	body, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(body))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp file left behind")
}

func TestStageDiscard(t *testing.T) {
	dir := t.TempDir()
	s, err := Stage(filepath.Join(dir, "out.csv"), []string{"a"}, nil)
	require.NoError(t, err)
	s.Discard()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
