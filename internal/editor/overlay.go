package editor

import "sort"

// Overlay is a face span attached to a byte range of a buffer.
type Overlay struct {
	Tag      string // owner tag; cleared wholesale via ClearTag
	Start    int    // inclusive byte offset
	End      int    // exclusive byte offset
	Face     string // face key resolved by the front-end
	Priority int    // higher wins when spans overlap
}

// Overlays stores the face spans of a single buffer. The renderer clears its
// own tags and re-adds spans on every refresh, so the store favours cheap
// bulk operations over incremental updates.
type Overlays struct {
	spans []Overlay
}

// NewOverlays returns an empty overlay store.
func NewOverlays() *Overlays { return &Overlays{} }

// Add attaches a face span.
func (o *Overlays) Add(ov Overlay) {
	if ov.End <= ov.Start {
		return
	}
	o.spans = append(o.spans, ov)
}

// ClearTag removes every span carrying the tag.
func (o *Overlays) ClearTag(tag string) {
	kept := o.spans[:0]
	for _, s := range o.spans {
		if s.Tag != tag {
			kept = append(kept, s)
		}
	}
	o.spans = kept
}

// At returns the highest-priority span covering the byte offset, or false.
func (o *Overlays) At(offset int) (Overlay, bool) {
	var best Overlay
	found := false
	for _, s := range o.spans {
		if offset < s.Start || offset >= s.End {
			continue
		}
		if !found || s.Priority > best.Priority {
			best = s
			found = true
		}
	}
	return best, found
}

// All returns the spans sorted by start offset.
func (o *Overlays) All() []Overlay {
	out := make([]Overlay, len(o.spans))
	copy(out, o.spans)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Len returns the number of stored spans.
func (o *Overlays) Len() int { return len(o.spans) }
