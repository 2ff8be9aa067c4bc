package tracker

import (
	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/scanner"
	"github.com/ironsheep/blurred-segments/internal/segment"
)

// FastTrack detects a blurred segment of width at most maxWidth along a
// fixed strip. With swidth == 0 the strip runs from p1 to p2 and the seed is
// the strongest pixel of the central scan. Otherwise the strip is swidth
// pixels wide around pc, in the direction p1p2, and pc is the seed.
// It returns nil when no segment of at least two points is found.
func (t *Tracker) FastTrack(p1, p2 geom.Point, maxWidth, lacks, swidth int, pc geom.Point) *segment.BlurredSegment {
	var ds scanner.Scanner
	if swidth != 0 {
		ds = t.provider.Centered(pc, p1.VectorTo(p2), max(swidth, MinScan), false)
	} else {
		ds = t.provider.Between(p1, p2)
	}
	if ds == nil {
		return nil
	}

	t.pix = ds.First(t.pix)
	if len(t.pix) < MinScan {
		return nil
	}
	t.record(t.pix)

	first := pc
	if swidth == 0 {
		i := t.field.LargestIn(t.pix)
		if i == -1 {
			return nil
		}
		first = t.pix[i]
	}
	bsp := segment.NewProto(maxWidth, first)

	right := side{last: first, scanning: true}
	left := side{last: first, scanning: true}
	for steps := t.maxScan; (right.scanning || left.scanning) && steps > 0; steps-- {
		if right.scanning {
			t.fastStep(&right, ds.NextOnRight, bsp.AddRight, lacks)
		}
		if left.scanning {
			t.fastStep(&left, ds.NextOnLeft, bsp.AddLeft, lacks)
		}
	}

	bs := bsp.EndOfBirth()
	if bs != nil {
		if swidth != 0 {
			bs.SetScan(pc, p1.VectorTo(p2))
		} else {
			bs.SetScan(p1, p1.VectorTo(p2))
		}
	}
	return bs
}

// side is the growth state of one end of a segment.
type side struct {
	scanning bool
	added    bool
	last     geom.Point
	// stop counts consecutive rejections; start counts the successes that
	// followed them.
	stop  int
	start int
}

func (t *Tracker) fastStep(sd *side, next func([]geom.Point) []geom.Point, add func(geom.Point) bool, lacks int) {
	t.pix = next(t.pix)
	if len(t.pix) < MinScan {
		sd.scanning = false
		return
	}
	t.record(t.pix)
	sd.added = false
	if i := t.field.LargestIn(t.pix); i != -1 {
		p := t.pix[i]
		if !t.proxTest || sd.last.Manhattan(p) <= t.proxThreshold {
			sd.added = add(p)
		}
		if sd.added {
			sd.last = p
		}
	}
	if sd.added {
		sd.stop = 0
	} else if sd.stop++; sd.stop > lacks {
		sd.scanning = false
	}
}
