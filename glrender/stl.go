package glrender

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	math "github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/soypat/geometry/ms3"
)

const (
	stlHeaderSize = 80
	stlFacetSize  = 50
)

var stlHeader = [stlHeaderSize]byte{'s', 't', 'i', 'l', 'l', 'l', 'i', 'f', 'e'}

// WriteBinarySTL writes triangles to w in binary STL format and returns the
// number of bytes written. Facet normals are computed from the winding order.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	if uint64(len(triangles)) > 1<<32-1 {
		return 0, errors.New("too many triangles for STL")
	}
	bw := bufio.NewWriter(w)
	n, err := bw.Write(stlHeader[:])
	if err != nil {
		return n, err
	}
	var buf [stlFacetSize]byte
	binary.LittleEndian.PutUint32(buf[:4], uint32(len(triangles)))
	ngot, err := bw.Write(buf[:4])
	n += ngot
	if err != nil {
		return n, err
	}
	for _, t := range triangles {
		normal := facetNormal(t)
		putVec(buf[0:12], normal)
		putVec(buf[12:24], t[0])
		putVec(buf[24:36], t[1])
		putVec(buf[36:48], t[2])
		buf[48], buf[49] = 0, 0 // Attribute byte count.
		ngot, err = bw.Write(buf[:])
		n += ngot
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadBinarySTL reads the triangles of a binary STL file. Facet normals are discarded.
func ReadBinarySTL(r io.Reader) ([]ms3.Triangle, error) {
	var header [stlHeaderSize + 4]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("reading STL header: %w", err)
	}
	count := binary.LittleEndian.Uint32(header[stlHeaderSize:])
	triangles := make([]ms3.Triangle, 0, min(count, 1<<16))
	br := bufio.NewReader(r)
	var buf [stlFacetSize]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(br, buf[:]); err != nil {
			return triangles, fmt.Errorf("reading STL facet %d of %d: %w", i, count, err)
		}
		triangles = append(triangles, ms3.Triangle{
			getVec(buf[12:24]),
			getVec(buf[24:36]),
			getVec(buf[36:48]),
		})
	}
	return triangles, nil
}

func facetNormal(t ms3.Triangle) ms3.Vec {
	a := mgl32.Vec3{t[0].X, t[0].Y, t[0].Z}
	b := mgl32.Vec3{t[1].X, t[1].Y, t[1].Z}
	c := mgl32.Vec3{t[2].X, t[2].Y, t[2].Z}
	n := b.Sub(a).Cross(c.Sub(a))
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	return ms3.Vec{X: n[0], Y: n[1], Z: n[2]}
}

func putVec(b []byte, v ms3.Vec) {
	binary.LittleEndian.PutUint32(b[0:], math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}

func getVec(b []byte) ms3.Vec {
	return ms3.Vec{
		X: math.Float32frombits(binary.LittleEndian.Uint32(b[0:])),
		Y: math.Float32frombits(binary.LittleEndian.Uint32(b[4:])),
		Z: math.Float32frombits(binary.LittleEndian.Uint32(b[8:])),
	}
}
