package stilllife

import (
	"bytes"
	_ "embed"
)

//go:embed scenes/wedding.yaml
var weddingScene []byte

// DefaultScene returns the wedding still-life: a marble table with a cologne
// and a perfume bottle, an itinerary card, a necklace box, two ring boxes, a
// pair of earrings and two vow books. Each call returns a fresh copy.
func DefaultScene() *Scene {
	s, err := DecodeScene(bytes.NewReader(weddingScene))
	if err != nil {
		panic("embedded scene: " + err.Error())
	}
	return s
}
