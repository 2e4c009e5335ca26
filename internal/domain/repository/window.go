package repository

// IsValidWindow returns true if w is a supported heat-ring window.
func IsValidWindow(w Window) bool {
	switch w {
	case W5, W10, W20:
		return true
	default:
		return false
	}
}

// DefaultWindow returns the default heat-ring window.
func DefaultWindow() Window { return W10 }

// NormalizeWindow converts a raw size to a valid window (or default).
func NormalizeWindow(n int) Window {
	if n == 0 {
		return DefaultWindow()
	}
	w := Window(n)
	if IsValidWindow(w) {
		return w
	}
	return DefaultWindow()
}
