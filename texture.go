package stilllife

import (
	"errors"
	"fmt"
)

var (
	ErrTextureSlotsFull = errors.New("all texture slots in use")
	ErrDuplicateTexture = errors.New("texture tag already registered")
)

type textureEntry struct {
	tag string
	id  uint32
}

// TextureRegistry maps texture tags to GPU texture ids. A texture's slot is its
// registration index and is also the texture unit it gets bound to.
type TextureRegistry struct {
	entries [MaxTextureSlots]textureEntry
	n       int
}

// Register stores id under tag in the next free slot and returns the slot.
func (r *TextureRegistry) Register(tag string, id uint32) (int, error) {
	if tag == "" {
		return -1, errors.New("empty texture tag")
	} else if r.Slot(tag) >= 0 {
		return -1, fmt.Errorf("%w: %q", ErrDuplicateTexture, tag)
	} else if r.n == len(r.entries) {
		return -1, fmt.Errorf("%w: cannot register %q", ErrTextureSlotsFull, tag)
	}
	r.entries[r.n] = textureEntry{tag: tag, id: id}
	r.n++
	return r.n - 1, nil
}

// Slot returns the slot of tag or -1 if it is not registered.
func (r *TextureRegistry) Slot(tag string) int {
	for i := 0; i < r.n; i++ {
		if r.entries[i].tag == tag {
			return i
		}
	}
	return -1
}

// ID returns the texture id registered under tag.
func (r *TextureRegistry) ID(tag string) (uint32, bool) {
	slot := r.Slot(tag)
	if slot < 0 {
		return 0, false
	}
	return r.entries[slot].id, true
}

// Len returns the number of used slots.
func (r *TextureRegistry) Len() int { return r.n }

// Full reports whether every slot is in use.
func (r *TextureRegistry) Full() bool { return r.n == len(r.entries) }

// Tags returns the registered tags in slot order.
func (r *TextureRegistry) Tags() []string {
	tags := make([]string, r.n)
	for i := range tags {
		tags[i] = r.entries[i].tag
	}
	return tags
}

// Reset empties the registry. It does not release the textures.
func (r *TextureRegistry) Reset() {
	*r = TextureRegistry{}
}
