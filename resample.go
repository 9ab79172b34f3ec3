package main

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

const iconSize = 32

var filters = map[string]resize.InterpolationFunction{
	"nearest":  resize.NearestNeighbor,
	"bilinear": resize.Bilinear,
	"bicubic":  resize.Bicubic,
	"mitchell": resize.MitchellNetravali,
	"lanczos2": resize.Lanczos2,
	"lanczos3": resize.Lanczos3,
}

func parseFilter(name string) (resize.InterpolationFunction, error) {
	f, ok := filters[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(filters))
		for k := range filters {
			names = append(names, k)
		}
		sort.Strings(names)
		return 0, fmt.Errorf("unknown filter %q, want one of %s", name, strings.Join(names, ", "))
	}
	return f, nil
}

// fit scales m into a size x size canvas. Unless stretch is set the aspect
// ratio is kept and the result is centred over transparent padding.
func fit(m image.Image, size int, filter resize.InterpolationFunction, stretch bool) *image.NRGBA {
	b := m.Bounds()
	w, h := size, size
	if !stretch {
		if b.Dx() > b.Dy() {
			h = max(1, (b.Dy()*size+b.Dx()/2)/b.Dx())
		} else {
			w = max(1, (b.Dx()*size+b.Dy()/2)/b.Dy())
		}
	}

	scaled := resize.Resize(uint(w), uint(h), m, filter)

	canvas := image.NewNRGBA(image.Rect(0, 0, size, size))
	x, y := (size-w)/2, (size-h)/2
	draw.Draw(canvas, image.Rect(x, y, x+w, y+h), scaled, scaled.Bounds().Min, draw.Src)
	return canvas
}
