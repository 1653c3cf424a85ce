package replay

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSONL(t *testing.T) {
	t.Parallel()

	t.Run("parses frames", func(t *testing.T) {
		t.Parallel()
		input := `{"points": [[0, 0], [10, 10]]}

{"points": [[1, 1], [11, 11], [20, 5]]}
`
		frames, err := ReadJSONL(strings.NewReader(input))
		require.NoError(t, err)

		want := []Frame{
			{XS: []float64{0, 10}, YS: []float64{0, 10}},
			{XS: []float64{1, 11, 20}, YS: []float64{1, 11, 5}},
		}
		if diff := cmp.Diff(want, frames); diff != "" {
			t.Errorf("frames mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects malformed point", func(t *testing.T) {
		t.Parallel()
		_, err := ReadJSONL(strings.NewReader(`{"points": [[1, 2, 3]]}`))
		assert.ErrorContains(t, err, "coordinates")
	})

	t.Run("rejects invalid json", func(t *testing.T) {
		t.Parallel()
		_, err := ReadJSONL(strings.NewReader(`{"points": [`))
		assert.ErrorContains(t, err, "line 1")
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()
		frames, err := ReadJSONL(strings.NewReader(""))
		require.NoError(t, err)
		assert.Empty(t, frames)
	})
}

func TestReadCSV(t *testing.T) {
	t.Parallel()

	t.Run("parses grouped rows with header", func(t *testing.T) {
		t.Parallel()
		input := "frame,x,y\n0,0,0\n0,10,10\n1,1,1\n1,11,11\n1,20,5\n"
		frames, err := ReadCSV(strings.NewReader(input))
		require.NoError(t, err)

		want := []Frame{
			{XS: []float64{0, 10}, YS: []float64{0, 10}},
			{XS: []float64{1, 11, 20}, YS: []float64{1, 11, 5}},
		}
		if diff := cmp.Diff(want, frames); diff != "" {
			t.Errorf("frames mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("parses without header", func(t *testing.T) {
		t.Parallel()
		frames, err := ReadCSV(strings.NewReader("3,1.5,2.5\n"))
		require.NoError(t, err)
		require.Len(t, frames, 1)
		assert.Equal(t, 1, frames[0].Len())
		assert.Equal(t, 1.5, frames[0].XS[0])
	})

	t.Run("rejects non-numeric frame mid-stream", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(strings.NewReader("0,1,1\noops,2,2\n"))
		assert.ErrorContains(t, err, "bad frame value")
	})

	t.Run("rejects bad coordinate", func(t *testing.T) {
		t.Parallel()
		_, err := ReadCSV(strings.NewReader("0,xx,1\n"))
		assert.ErrorContains(t, err, "bad x value")
	})
}
