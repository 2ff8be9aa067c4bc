package scanner

import (
	"testing"

	"github.com/ironsheep/blurred-segments/internal/geom"
)

func TestOctantRoundTrip(t *testing.T) {
	dirs := []geom.Vector{
		geom.Vec(5, 2), geom.Vec(2, 5), geom.Vec(-2, 5), geom.Vec(-5, 2),
		geom.Vec(-5, -2), geom.Vec(-2, -5), geom.Vec(2, -5), geom.Vec(5, -2),
		geom.Vec(1, 0), geom.Vec(0, 1), geom.Vec(-1, 0), geom.Vec(0, -1),
		geom.Vec(3, 3), geom.Vec(-3, 3),
	}
	seen := make(map[int]bool)
	for _, d := range dirs {
		o := OctantOf(d)
		seen[o.Number()] = true
		c := o.VectorToLocal(d)
		if c.X < c.Y || c.Y < 0 || c.X <= 0 {
			t.Errorf("%v: canonical %v not in first octant", d, c)
		}
		for _, p := range []geom.Point{geom.Pt(3, -7), geom.Pt(0, 0), geom.Pt(-4, 9)} {
			if got := o.ToImage(o.ToLocal(p)); got != p {
				t.Errorf("%v: round trip of %v gave %v", d, p, got)
			}
		}
	}
	if len(seen) != 8 {
		t.Errorf("got %d distinct octants, want 8", len(seen))
	}
}

// Scans of a strip are pairwise disjoint and cover every pixel of the box
// lying between the two bounding lines.
func TestScansTileTheStrip(t *testing.T) {
	const w, h = 30, 25
	tests := []struct {
		name   string
		p1, p2 geom.Point
	}{
		{"octant 1", geom.Pt(4, 6), geom.Pt(20, 11)},
		{"octant 2", geom.Pt(10, 3), geom.Pt(14, 20)},
		{"octant 3", geom.Pt(18, 2), geom.Pt(12, 21)},
		{"octant 4", geom.Pt(25, 8), geom.Pt(6, 13)},
		{"octant 5", geom.Pt(26, 20), geom.Pt(5, 12)},
		{"octant 6", geom.Pt(16, 22), geom.Pt(9, 4)},
		{"octant 7", geom.Pt(8, 22), geom.Pt(15, 3)},
		{"octant 8", geom.Pt(3, 18), geom.Pt(27, 9)},
		{"diagonal", geom.Pt(2, 2), geom.Pt(17, 17)},
		{"horizontal", geom.Pt(3, 12), geom.Pt(26, 12)},
		{"vertical", geom.Pt(15, 22), geom.Pt(15, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewProvider(w, h).Between(tt.p1, tt.p2)
			if sc == nil {
				t.Fatal("nil scanner")
			}
			count := make(map[geom.Point]int)
			var buf []geom.Point
			record := func(scan []geom.Point) {
				for _, p := range scan {
					count[p]++
				}
			}
			buf = sc.First(buf)
			record(buf)
			for i := 0; i < 80; i++ {
				buf = sc.NextOnLeft(buf)
				record(buf)
				buf = sc.NextOnRight(buf)
				record(buf)
			}

			d := tt.p1.VectorTo(tt.p2)
			c1 := d.Dot(geom.Vector(tt.p1))
			c2 := d.Dot(geom.Vector(tt.p2))
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					p := geom.Pt(x, y)
					g := d.Dot(geom.Vector(p))
					in := g >= c1 && g <= c2
					switch n := count[p]; {
					case in && n != 1:
						t.Errorf("%v in strip scanned %d times", p, n)
					case !in && n != 0:
						t.Errorf("%v outside strip scanned %d times", p, n)
					}
				}
			}
		})
	}
}

func TestScanConnectivityAndSides(t *testing.T) {
	p1, p2 := geom.Pt(10, 40), geom.Pt(60, 23)
	sc := NewProvider(100, 100).Between(p1, p2)
	d := p1.VectorTo(p2)

	first := sc.First(nil)
	if first[0] != p1 || first[len(first)-1] != p2 {
		t.Errorf("central scan runs %v..%v, want %v..%v", first[0], first[len(first)-1], p1, p2)
	}
	for i := 1; i < len(first); i++ {
		if !first[i-1].IsConnectedTo(first[i]) {
			t.Fatalf("gap between %v and %v", first[i-1], first[i])
		}
	}

	left := sc.NextOnLeft(nil)
	for _, p := range left {
		if d.Det(p1.VectorTo(p)) <= 0 {
			t.Errorf("left scan point %v is not on the left", p)
		}
	}
	right := sc.NextOnRight(nil)
	for _, p := range right {
		if d.Det(p1.VectorTo(p)) >= 0 {
			t.Errorf("right scan point %v is not on the right", p)
		}
	}
}

func TestCenteredLength(t *testing.T) {
	tests := []struct {
		name   string
		dir    geom.Vector
		length int
		want   int
	}{
		{"diagonal 16", geom.Vec(3, 1), 16, 17},
		{"steep 8", geom.Vec(-1, -4), 8, 9},
		{"vertical 16", geom.Vec(0, 5), 16, 17},
	}
	center := geom.Pt(40, 40)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewProvider(80, 80).Centered(center, tt.dir, tt.length, false)
			scan := sc.First(nil)
			if len(scan) != tt.want {
				t.Errorf("got %d points, want %d", len(scan), tt.want)
			}
			found := false
			for _, p := range scan {
				found = found || p == center
			}
			if !found {
				t.Errorf("central scan misses the centre %v", center)
			}
		})
	}
}

func TestClippedScans(t *testing.T) {
	sc := NewProvider(20, 20).Centered(geom.Pt(1, 10), geom.Vec(1, 0), 16, false)
	if got := len(sc.First(nil)); got != 10 {
		t.Errorf("clipped central scan: got %d points, want 10", got)
	}
	sc = NewProvider(20, 20).Between(geom.Pt(2, 0), geom.Pt(2, 19))
	for i := 0; i < 2; i++ {
		if got := sc.NextOnLeft(nil); len(got) != 20 {
			t.Errorf("left scan %d: got %d points, want 20", i+1, len(got))
		}
	}
	if got := sc.NextOnLeft(nil); len(got) != 0 {
		t.Errorf("scan beyond the border: got %v, want empty", got)
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 geom.Point
	}{
		{"directional", geom.Pt(50, 50), geom.Pt(80, 61)},
		{"reversed", geom.Pt(80, 61), geom.Pt(50, 50)},
		{"vh", geom.Pt(50, 70), geom.Pt(50, 40)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := NewProvider(200, 200).Between(tt.p1, tt.p2)
			for i, p := range sc.First(nil) {
				if got := sc.Locate(p); got != geom.Pt(0, i) {
					t.Errorf("central point %d: got %v, want (0,%d)", i, got, i)
				}
			}
			for j := 1; j <= 3; j++ {
				for i, p := range sc.NextOnLeft(nil) {
					if got := sc.Locate(p); got != geom.Pt(j, i) {
						t.Errorf("left scan %d point %d: got %v", j, i, got)
					}
				}
			}
			for j := 1; j <= 3; j++ {
				for i, p := range sc.NextOnRight(nil) {
					if got := sc.Locate(p); got != geom.Pt(-j, i) {
						t.Errorf("right scan %d point %d: got %v", j, i, got)
					}
				}
			}
		})
	}
}

func TestBindTo(t *testing.T) {
	sp := NewProvider(100, 100)

	t.Run("same line keeps scans", func(t *testing.T) {
		sc := sp.Centered(geom.Pt(30, 30), geom.Vec(3, 1), 10, true)
		before := sc.First(nil)
		sc.BindTo(3, 1, 3*30+30)
		after := sc.First(nil)
		if !equalPoints(before, after) {
			t.Errorf("got %v, want %v", after, before)
		}
	})

	t.Run("vh rebinding", func(t *testing.T) {
		sc := sp.Centered(geom.Pt(20, 20), geom.Vec(1, 0), 8, true)
		if got := len(sc.First(nil)); got != 9 {
			t.Fatalf("initial scan: got %d points, want 9", got)
		}
		sc.BindTo(2, 1, 60)
		first := sc.First(nil)
		if first[0] != geom.Pt(14, 20) || first[len(first)-1] != geom.Pt(26, 20) {
			t.Errorf("rebound scan runs %v..%v, want (14,20)..(26,20)", first[0], first[len(first)-1])
		}
		left := sc.NextOnLeft(nil)
		if left[0] != geom.Pt(14, 21) || left[len(left)-1] != geom.Pt(25, 21) {
			t.Errorf("rebound left scan runs %v..%v, want (14,21)..(25,21)", left[0], left[len(left)-1])
		}
	})

	t.Run("fixed ignores binding", func(t *testing.T) {
		sc := sp.Centered(geom.Pt(20, 20), geom.Vec(1, 0), 8, false)
		sc.BindTo(2, 1, 60)
		if got := len(sc.First(nil)); got != 9 {
			t.Errorf("got %d points, want 9", got)
		}
	})

	t.Run("parallel line ignored", func(t *testing.T) {
		sc := sp.Centered(geom.Pt(20, 20), geom.Vec(1, 0), 8, true)
		sc.BindTo(0, 1, 20)
		if got := len(sc.First(nil)); got != 9 {
			t.Errorf("got %d points, want 9", got)
		}
	})
}

func TestClone(t *testing.T) {
	sc := NewProvider(60, 60).Between(geom.Pt(10, 10), geom.Pt(40, 22))
	sc.NextOnLeft(nil)
	cp := sc.Clone()
	want := sc.NextOnLeft(nil)
	sc.NextOnLeft(nil)
	if got := cp.NextOnLeft(nil); !equalPoints(got, want) {
		t.Errorf("clone diverged: got %v, want %v", got, want)
	}
}

func TestNullDirection(t *testing.T) {
	sp := NewProvider(10, 10)
	if sp.Between(geom.Pt(3, 3), geom.Pt(3, 3)) != nil {
		t.Error("Between with equal points should be nil")
	}
	if sp.Centered(geom.Pt(3, 3), geom.Vec(0, 0), 8, true) != nil {
		t.Error("Centered with null direction should be nil")
	}
}

func equalPoints(a, b []geom.Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
