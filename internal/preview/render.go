package preview

import (
	"image"
	"math"

	"fmdl-tool/internal/fmdl"
	"fmdl-tool/internal/mathutil"
)

// Options controls a point-cloud preview.
type Options struct {
	Size        int
	Supersample int
	Camera      mathutil.Mat3
	// Radius is the splat radius in output pixels.
	Radius int
}

// DefaultOptions returns a 256px, 2x supersampled preview from PreviewCamera.
func DefaultOptions() Options {
	return Options{Size: 256, Supersample: 2, Camera: mathutil.PreviewCamera, Radius: 1}
}

// Render splats every decoded vertex of m into a square image, fitted to the
// frame with a margin and shaded by depth. Models without vertices render as
// a transparent image.
func Render(m *fmdl.Model, opts Options) *image.NRGBA {
	if opts.Supersample < 1 {
		opts.Supersample = 1
	}
	renderSize := opts.Size * opts.Supersample

	var pts []mathutil.Vec3
	for i := range m.Objects {
		for _, v := range m.Objects[i].Vertices {
			pts = append(pts, opts.Camera.MulVec3(mathutil.V32(v.X, v.Y, v.Z)))
		}
	}
	if len(pts) == 0 || opts.Size <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, max(opts.Size, 0), max(opts.Size, 0)))
	}

	lo := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		lo, hi = lo.Min(p), hi.Max(p)
	}
	center := lo.Add(hi).Scale(0.5)
	span := math.Max(hi[0]-lo[0], hi[1]-lo[1])
	if span < 0.001 {
		span = 0.001
	}
	depth := hi[2] - lo[2]

	margin := 8 * opts.Supersample
	scale := float64(renderSize-2*margin) / span
	radius := opts.Radius * opts.Supersample
	half := float64(renderSize) / 2

	fb := NewFrameBuffer(renderSize, renderSize)
	for _, p := range pts {
		sx := int(math.Round((p[0]-center[0])*scale + half))
		sy := int(math.Round(half - (p[1]-center[1])*scale))

		// Near points are brighter.
		t := 1.0
		if depth > 1e-9 {
			t = (p[2] - lo[2]) / depth
		}
		shade := uint8(90 + 165*t)
		for dy := -radius; dy <= radius; dy++ {
			for dx := -radius; dx <= radius; dx++ {
				if dx*dx+dy*dy > radius*radius {
					continue
				}
				fb.Plot(sx+dx, sy+dy, p[2], shade, shade, uint8(min(255, int(shade)+10)))
			}
		}
	}

	img := fb.Image()
	if opts.Supersample > 1 {
		img = Downsample(img, opts.Size)
	}
	return img
}
