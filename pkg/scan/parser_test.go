package scan_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goruler/pkg/geometry"
	"github.com/philipparndt/goruler/pkg/scan"
)

const asciiTwoTriangles = `solid bench
  facet normal 0 0 1
    outer loop
      vertex 0 0 0
      vertex 10 0 0
      vertex 0 20 0
    endloop
  endfacet
  facet normal 0 0 1
    outer loop
      vertex 10 0 0
      vertex 10 20 0
      vertex 0 20 0
    endloop
  endfacet
endsolid bench
`

func binarySTL(t *testing.T, header string, triangles ...[9]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	h := make([]byte, 80)
	copy(h, header)
	buf.Write(h)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(len(triangles))))
	for _, tri := range triangles {
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 1}))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, tri))
		require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
	}
	return buf.Bytes()
}

func TestParseASCIIDeduplicatesVertices(t *testing.T) {
	cloud, err := scan.Parse([]byte(asciiTwoTriangles), 1)
	require.NoError(t, err)

	assert.Equal(t, "bench", cloud.Name)
	assert.Equal(t, 4, cloud.Len())
	assert.Equal(t, []geometry.Vector3{
		geometry.NewVector3(0, 0, 0),
		geometry.NewVector3(10, 0, 0),
		geometry.NewVector3(0, 20, 0),
		geometry.NewVector3(10, 20, 0),
	}, cloud.Points)
	assert.Equal(t, geometry.NewVector3(5, 10, 0), cloud.Bounds.Center())
}

func TestParseConvertsUnits(t *testing.T) {
	cloud, err := scan.Parse([]byte(asciiTwoTriangles), 1000)
	require.NoError(t, err)

	assert.True(t, cloud.Points[3].ApproxEqual(geometry.NewVector3(0.01, 0.02, 0), 1e-12),
		"got %v", cloud.Points[3])
}

func TestParseBinary(t *testing.T) {
	data := binarySTL(t, "solid exported-by-a-tool",
		[9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[9]float32{1, 0, 0, 1, 1, 0, 0, 1, 0},
	)

	cloud, err := scan.Parse(data, 1)
	require.NoError(t, err)

	assert.Equal(t, "exported-by-a-tool", cloud.Name)
	assert.Equal(t, 4, cloud.Len())
	assert.Contains(t, cloud.Points, geometry.NewVector3(1, 1, 0))
}

func TestParseRejectsEmptyScene(t *testing.T) {
	_, err := scan.Parse([]byte("solid nothing\nendsolid nothing\n"), 1)
	assert.ErrorIs(t, err, scan.ErrEmptyScene)

	_, err = scan.Parse(binarySTL(t, "empty"), 1)
	assert.ErrorIs(t, err, scan.ErrEmptyScene)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := scan.Parse([]byte(asciiTwoTriangles), 0)
	assert.Error(t, err)

	_, err = scan.Parse([]byte("not an stl"), 1)
	assert.Error(t, err)

	_, err = scan.Parse([]byte("solid x\nvertex 1 two 3\n"), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")

	_, err = scan.Parse([]byte("solid x\nvertex 1 2\n"), 1)
	assert.Error(t, err)
}

func TestParseRejectsNonFiniteVertices(t *testing.T) {
	for _, coord := range []string{"nan", "NaN", "inf", "-Inf"} {
		t.Run(coord, func(t *testing.T) {
			_, err := scan.Parse([]byte("solid x\nvertex 0 0 0\nvertex "+coord+" 1 2\n"), 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 3: non-finite vertex")
		})
	}

	nan := float32(math.NaN())
	_, err := scan.Parse(binarySTL(t, "bad",
		[9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0},
		[9]float32{0, 0, 0, nan, 0, 0, 0, 1, 0}), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "triangle 2: non-finite vertex")
}

func TestLoadNamesCloudAfterFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "desk.stl")
	require.NoError(t, os.WriteFile(path, binarySTL(t, "", [9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0}), 0644))

	cloud, err := scan.Load(path, 1)
	require.NoError(t, err)
	assert.Equal(t, "desk", cloud.Name)
	assert.Equal(t, 3, cloud.Len())

	_, err = scan.Load(filepath.Join(dir, "missing.stl"), 1)
	assert.Error(t, err)
}

func TestCloudAdd(t *testing.T) {
	cloud := scan.NewCloud("c")
	p := geometry.NewVector3(1, 2, 3)

	assert.True(t, cloud.Add(p))
	assert.False(t, cloud.Add(p))
	assert.Equal(t, 1, cloud.Len())
	assert.Equal(t, p, cloud.Bounds.Min)
	assert.Equal(t, p, cloud.Bounds.Max)
}
