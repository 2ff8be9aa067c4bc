package gradient

import "github.com/ironsheep/blurred-segments/internal/geom"

// sobel3x3 returns the 3x3 Sobel gradient map, zero on a 1-pixel border.
func sobel3x3(width, height int, d []int) []geom.Vector {
	g := make([]geom.Vector, width*height)
	for y := 1; y < height-1; y++ {
		up, row, down := (y-1)*width, y*width, (y+1)*width
		for x := 1; x < width-1; x++ {
			g[row+x] = geom.Vector{
				X: d[up+x+1] + 2*d[row+x+1] + d[down+x+1] -
					d[up+x-1] - 2*d[row+x-1] - d[down+x-1],
				Y: d[down+x-1] + 2*d[down+x] + d[down+x+1] -
					d[up+x-1] - 2*d[up+x] - d[up+x+1],
			}
		}
	}
	return g
}

var (
	// outer weights apply 2 pixels away from the centre, inner weights 1 pixel.
	sobelOuter = [5]int{5, 8, 10, 8, 5}
	sobelInner = [5]int{4, 10, 20, 10, 4}
)

// sobel5x5 returns the 5x5 gradient map, zero on a 2-pixel border.
func sobel5x5(width, height int, d []int) []geom.Vector {
	g := make([]geom.Vector, width*height)
	at := func(x, y int) int { return d[y*width+x] }
	for y := 2; y < height-2; y++ {
		for x := 2; x < width-2; x++ {
			gx, gy := 0, 0
			for k := 0; k < 5; k++ {
				gx += sobelOuter[k]*(at(x+2, y+k-2)-at(x-2, y+k-2)) +
					sobelInner[k]*(at(x+1, y+k-2)-at(x-1, y+k-2))
				gy += sobelOuter[k]*(at(x+k-2, y+2)-at(x+k-2, y-2)) +
					sobelInner[k]*(at(x+k-2, y+1)-at(x+k-2, y-1))
			}
			g[y*width+x] = geom.Vector{X: gx, Y: gy}
		}
	}
	return g
}
