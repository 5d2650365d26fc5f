package scan

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/philipparndt/goruler/pkg/geometry"
)

const (
	binaryHeaderSize   = 80
	binaryTriangleSize = 50 // normal + 3 vertices as float32, 2 attribute bytes
)

// ErrEmptyScene is returned for a scene without any vertex
var ErrEmptyScene = errors.New("scene has no feature points")

// Load reads an STL file and converts its vertices into a feature-point
// cloud. unitsPerMeter is the number of file units per meter (1000 for
// millimeter models).
func Load(path string, unitsPerMeter float64) (*Cloud, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	cloud, err := Parse(data, unitsPerMeter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	if cloud.Name == "" {
		cloud.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cloud, nil
}

// Parse detects ASCII or binary STL and returns its feature-point cloud
func Parse(data []byte, unitsPerMeter float64) (*Cloud, error) {
	if unitsPerMeter <= 0 || math.IsNaN(unitsPerMeter) || math.IsInf(unitsPerMeter, 0) {
		return nil, fmt.Errorf("invalid units per meter: %v", unitsPerMeter)
	}
	scale := 1.0 / unitsPerMeter

	var (
		cloud *Cloud
		err   error
	)
	// Some exporters write binary files whose header starts with "solid",
	// so a size that matches the binary layout wins.
	if isBinary(data) {
		cloud, err = parseBinary(data, scale)
	} else if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		cloud, err = parseASCII(data, scale)
	} else {
		return nil, fmt.Errorf("unrecognized STL format")
	}
	if err != nil {
		return nil, err
	}

	if cloud.Len() == 0 {
		return nil, ErrEmptyScene
	}
	return cloud, nil
}

func isBinary(data []byte) bool {
	if len(data) < binaryHeaderSize+4 {
		return false
	}
	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	return uint64(len(data)) == binaryHeaderSize+4+uint64(count)*binaryTriangleSize
}

// parseASCII collects "vertex x y z" lines
func parseASCII(data []byte, scale float64) (*Cloud, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	cloud := NewCloud("")
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 && cloud.Name == "" {
				cloud.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var c [3]float64
			for i := range c {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q", lineNo, fields[i+1])
				}
				c[i] = v
			}
			p := geometry.NewVector3(c[0], c[1], c[2])
			if !p.IsFinite() {
				return nil, fmt.Errorf("line %d: non-finite vertex %s", lineNo, p)
			}
			cloud.Add(p.Mul(scale))
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}
	return cloud, nil
}

// parseBinary reads the fixed-size triangle records
func parseBinary(data []byte, scale float64) (*Cloud, error) {
	cloud := NewCloud(string(bytes.TrimSpace(bytes.TrimRight(data[:binaryHeaderSize], "\x00"))))
	if strings.HasPrefix(cloud.Name, "solid") {
		cloud.Name = strings.TrimSpace(strings.TrimPrefix(cloud.Name, "solid"))
	}

	count := binary.LittleEndian.Uint32(data[binaryHeaderSize:])
	offset := binaryHeaderSize + 4
	for i := uint32(0); i < count; i++ {
		record := data[offset : offset+binaryTriangleSize]
		// Skip the 12-byte normal
		for v := 0; v < 3; v++ {
			base := 12 + v*12
			x := math.Float32frombits(binary.LittleEndian.Uint32(record[base:]))
			y := math.Float32frombits(binary.LittleEndian.Uint32(record[base+4:]))
			z := math.Float32frombits(binary.LittleEndian.Uint32(record[base+8:]))
			p := geometry.NewVector3(float64(x), float64(y), float64(z))
			if !p.IsFinite() {
				return nil, fmt.Errorf("triangle %d: non-finite vertex %s", i+1, p)
			}
			cloud.Add(p.Mul(scale))
		}
		offset += binaryTriangleSize
	}
	return cloud, nil
}
