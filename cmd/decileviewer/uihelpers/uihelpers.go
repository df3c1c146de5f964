package uihelpers

import "strings"

// ComputeChartDimensions applies width/height clamp rules used for charts.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.6)
	if h < 420 {
		h = 420
	}
	if h > 720 {
		h = 720
	}
	return w, h
}

// TruncatePath shortens p to at most n runes, keeping the tail (file name) visible.
func TruncatePath(p string, n int) string {
	r := []rune(p)
	if n <= 3 || len(r) <= n {
		return p
	}
	return "…" + string(r[len(r)-(n-1):])
}

// MergeRecent puts path first in list, drops duplicates and blanks, and caps the result at max entries.
func MergeRecent(path string, list []string, max int) []string {
	out := []string{}
	if strings.TrimSpace(path) != "" {
		out = append(out, path)
	}
	for _, f := range list {
		if len(out) >= max {
			break
		}
		if f == path || strings.TrimSpace(f) == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}
