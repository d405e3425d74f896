package termmap

import (
	"io"
	"strings"

	"github.com/peermap/peermap/geocache"
)

const (
	DefaultPlotWidth  = 72
	DefaultPlotHeight = 24

	marker = '*'
)

// Plot draws the locations as an equirectangular scatter inside a
// framed width x height grid: longitude -180..180 maps left to right,
// latitude 90..-90 top to bottom. Out-of-range coordinates are clamped
// onto the frame edge rather than dropped.
func Plot(w io.Writer, locations []geocache.Location, width, height int) {
	if width < 2 {
		width = DefaultPlotWidth
	}

	if height < 2 {
		height = DefaultPlotHeight
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", width))
	}

	for _, loc := range locations {
		x, y := project(loc.Latitude, loc.Longitude, width, height)
		grid[y][x] = marker
	}

	border := "+" + strings.Repeat("-", width) + "+\n"

	io.WriteString(w, border) // nolint: errcheck

	for _, row := range grid {
		io.WriteString(w, "|"+string(row)+"|\n") // nolint: errcheck
	}

	io.WriteString(w, border) // nolint: errcheck
}

func project(lat, lon float64, width, height int) (int, int) {
	x := int((lon + 180.0) / 360.0 * float64(width-1))
	y := int((90.0 - lat) / 180.0 * float64(height-1))

	return clamp(x, width-1), clamp(y, height-1)
}

func clamp(v, max int) int {
	switch {
	case v < 0:
		return 0
	case v > max:
		return max
	}

	return v
}
