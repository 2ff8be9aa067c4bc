package tracker

import (
	"github.com/ironsheep/blurred-segments/internal/geom"
	"github.com/ironsheep/blurred-segments/internal/segment"
)

// FineTrack detects a blurred segment of width at most maxWidth through
// center, expected in direction scandir. Scans run along the normal to
// scandir, turned towards gref, and only accept pixels whose gradient is
// close to that normal. Failure tells why tracking stopped.
func (t *Tracker) FineTrack(center geom.Point, scandir geom.Vector, maxWidth, lacks int, gref geom.Vector) *segment.BlurredSegment {
	scanwidth := max(2*maxWidth, MinScan)
	normal := scandir.Orthog()
	if !normal.DirectedAs(gref) {
		normal = normal.Invert()
	}
	t.failure = 0

	ds := t.provider.Centered(center, normal, scanwidth, true)
	if ds == nil {
		t.failure = NoStart
		return nil
	}
	t.pix = ds.First(t.pix)
	if len(t.pix) < MinScan {
		t.failure = NoStart
		return nil
	}
	t.record(t.pix)
	t.cand = t.field.OrientedLocalMax(t.pix, normal, t.cand)
	if len(t.cand) == 0 {
		t.failure = NoStart
		return nil
	}
	bsp := segment.NewProto(maxWidth, t.pix[t.cand[0]])

	atcOn := true
	stable := 0
	right := side{scanning: true}
	left := side{scanning: true}
	for count := 1; right.scanning || left.scanning; count++ {
		sw := bsp.StrictThickness()

		if atcOn && stable >= t.atcDelay {
			tightenWidth(bsp)
			atcOn = false
		}

		if count > t.fittingDelay && bsp.IsExtending() {
			if count == t.fittingDelay+1 {
				dirn := bsp.SupportVector()
				ps := dirn.Dot(scandir)
				if 4*ps*ps < 3*dirn.Norm2()*scandir.Norm2() {
					right.scanning, left.scanning = false, false
					t.failure |= LostOrientation
				}
			}
			cl := bsp.Line().CentralLine()
			ds.BindTo(cl.A, cl.B, cl.C)
		}

		if right.scanning {
			if t.fineStep(&right, bsp, ds.NextOnRight, bsp.AddRight, normal, lacks, ImageBoundOnRight) {
				stable++
				if right.added && atcOn && sw.LessThan(bsp.StrictThickness()) {
					stable = 0
				}
			}
		}
		if left.scanning {
			if t.fineStep(&left, bsp, ds.NextOnLeft, bsp.AddLeft, normal, lacks, ImageBoundOnLeft) {
				stable++
				if left.added && atcOn && sw.LessThan(bsp.StrictThickness()) {
					stable = 0
				}
			}
		}
	}
	if right.start != 0 {
		bsp.RemoveRight(right.start)
	}
	if left.start != 0 {
		bsp.RemoveLeft(left.start)
	}

	bs := bsp.EndOfBirth()
	if bs != nil {
		bs.SetScan(center, normal)
	}
	return bs
}

// tightenWidth lowers the assigned width of bsp to its digital thickness
// plus one half, when that is narrower.
func tightenWidth(bsp *segment.Proto) {
	if w := bsp.DigitalThickness().SumWithOneHalf(); w.LessThan(bsp.MaxWidth()) {
		bsp.SetMaxWidth(w)
	}
}

// fineStep takes the next scan of one side and tries its oriented local
// maxima in turn. It reports whether a scan was available.
func (t *Tracker) fineStep(sd *side, bsp *segment.Proto, next func([]geom.Point) []geom.Point,
	add func(geom.Point) bool, normal geom.Vector, lacks int, bound Failure) bool {
	t.pix = next(t.pix)
	if len(t.pix) < MinScan {
		t.failure |= bound
		sd.scanning = false
		return false
	}
	t.record(t.pix)
	t.cand = t.field.OrientedLocalMax(t.pix, normal, t.cand)
	sd.added = false
	for _, i := range t.cand {
		if sd.added = add(t.pix[i]); sd.added {
			break
		}
	}
	if !sd.added {
		sd.stop++
		if sd.stop-sd.start > lacks {
			if bsp.Size() <= 3 {
				t.failure = NoStart
			}
			sd.scanning = false
		}
		return true
	}
	if sd.stop == 0 {
		sd.start = 0
	} else if sd.start++; sd.start >= sd.stop {
		sd.stop, sd.start = 0, 0
	}
	return true
}
