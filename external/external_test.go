package external

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/lyricmidi/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writes a shell script that takes the same flags as the model scripts and
// drops body into the --out path
func fakeScript(t *testing.T, dir, name, body string) {
	script := `out=""
while [ $# -gt 0 ]; do
  if [ "$1" = "--out" ]; then out="$2"; fi
  shift
done
cat > "$out" <<'JSON'
` + body + `
JSON
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(script), 0o755))
}

func shRunner(t *testing.T) (*Runner, string) {
	if _, err := os.Stat("/bin/sh"); err != nil {
		t.Skip("no /bin/sh")
	}
	dir := t.TempDir()
	return NewRunner("/bin/sh", dir), dir
}

func TestParseMethod(t *testing.T) {
	assert := assert.New(t)
	for _, m := range Methods {
		got, err := ParseMethod(string(m))
		assert.NoError(err)
		assert.Equal(m, got)
	}
	_, err := ParseMethod("mtl")
	assert.ErrorIs(err, ErrUnknownMethod)
}

func TestNewRunnerDefaultsToPython3(t *testing.T) {
	r := NewRunner("", t.TempDir())
	assert.Equal(t, "python3", r.PythonPath)
}

func TestNewRunnerPrefersVenv(t *testing.T) {
	dir := t.TempDir()
	venv := filepath.Join(dir, ".venv", "bin")
	require.NoError(t, os.MkdirAll(venv, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(venv, "python"), nil, 0o755))
	r := NewRunner("", dir)
	assert.Equal(t, filepath.Join(venv, "python"), r.PythonPath)
}

func TestScriptAligner(t *testing.T) {
	runner, dir := shRunner(t)
	fakeScript(t, dir, constants.AlignScript, `{"word_align": [[0, 10], [10, 20]], "words": ["hi", "there"]}`)

	a := NewScriptAligner(runner, t.TempDir())
	spans, err := a.Align(context.Background(), AlignRequest{AudioPath: "a.wav", LyricsPath: "l.txt", Method: MTL, CUDA: true})
	require.NoError(t, err)

	assert := assert.New(t)
	require.Len(t, spans, 2)
	assert.Equal("there", spans[1].Word)
	assert.InDelta(10*constants.AlignResolution, spans[1].Start, 1e-12)
	assert.InDelta(20*constants.AlignResolution, spans[1].End, 1e-12)
}

func TestScriptAlignerProcessError(t *testing.T) {
	runner, dir := shRunner(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, constants.AlignScript), []byte("echo boom >&2\nexit 3\n"), 0o755))

	a := NewScriptAligner(runner, t.TempDir())
	_, err := a.Align(context.Background(), AlignRequest{Method: MTL})
	require.Error(t, err)

	var pe *ProcessError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.ExitCode)
	assert.Equal(t, "alignment", pe.Stage)
	assert.Contains(t, pe.Error(), "boom")
}

func TestScriptPitchDetector(t *testing.T) {
	runner, dir := shRunner(t)
	fakeScript(t, dir, constants.PitchScript, "Time,Frequency,Confidence\n0,440,0.9\n0.01,441,0.8")

	d := NewScriptPitchDetector(runner, t.TempDir())
	track, err := d.Detect(context.Background(), "a.wav")
	require.NoError(t, err)
	assert.Equal(t, []float64{440, 441}, track.Frequencies())
}

func TestDecodeAlignmentErrors(t *testing.T) {
	_, err := decodeAlignment([]byte("{"), 1)
	assert.Error(t, err)
	_, err = decodeAlignment([]byte(`{"word_align": [[0, 1]], "words": []}`), 1)
	assert.Error(t, err)
}
