package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"
)

const sampleCSV = `01101,"060  ","0600000","ホッカイドウ","サッポロシチュウオウク","","北海道","札幌市中央区","",0,0,0,0,0,0
13101,"100  ","1000000","トウキョウト","チヨダク","イカニケイサイガナイバアイ","東京都","千代田区","以下に掲載がない場合",0,0,0,0,0,0
13101,"101  ","1010052","トウキョウト","チヨダク","カンダオガワマチ","東京都","千代田区","神田小川町",0,0,0,0,0,0
13103,"106  ","1060032","トウキョウト","ミナトク","ロッポンギ","東京都","港区","六本木（次のビルを除く）",0,0,0,0,0,0
`

func TestReadRows(t *testing.T) {
	rows, err := ReadRows(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	// the empty-district row is skipped
	require.Len(t, rows, 3)

	assert.Equal(t, "1000000", rows[0].PostalCode)
	assert.Equal(t, "東京都", rows[0].Prefecture)
	assert.Equal(t, "千代田区", rows[0].City)
	assert.Equal(t, "以下に掲載がない場合", rows[0].District)

	assert.Equal(t, "1060032", rows[2].PostalCode)
	assert.Equal(t, "港区", rows[2].City)
	assert.Equal(t, "六本木（次のビルを除く）", rows[2].District)
}

func TestReadRowsShortRecords(t *testing.T) {
	rows, err := ReadRows(strings.NewReader("a,b,c\n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadFileShiftJIS(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(sampleCSV)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ken_all.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o644))

	rows, err := LoadFile(path, "sjis")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "神田小川町", rows[1].District)
}

func TestLoadFileUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ken_all.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	rows, err := LoadFile(path, "utf8")
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nonexistent.csv"), "sjis")
	assert.Error(t, err)
}
