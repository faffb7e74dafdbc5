package software

import "image/color"

// Option configures a Renderer.
type Option func(*options)

type options struct {
	clear color.NRGBA
}

// defaultOptions matches bolt's magenta background.
func defaultOptions() options {
	return options{clear: color.NRGBA{R: 255, G: 0, B: 255, A: 255}}
}

// WithClearColor sets the background color, channels in 0..1.
func WithClearColor(r, g, b, a float32) Option {
	return func(o *options) {
		o.clear = toNRGBA([4]float32{r, g, b, a})
	}
}
