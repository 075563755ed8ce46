package feed

// FullScreen is the shared render-mode toggle. It only changes how items are
// sized; index and playback are untouched.
type FullScreen struct {
	on bool
}

// Toggle flips the mode and returns the new value
func (f *FullScreen) Toggle() bool {
	f.on = !f.on
	return f.on
}

// Enabled reports whether full screen is on
func (f FullScreen) Enabled() bool {
	return f.on
}
