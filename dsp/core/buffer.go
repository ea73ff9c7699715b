package core

// ZeroChannels zeroes every channel of a multi-channel view.
func ZeroChannels[T any](channels [][]T) {
	for _, ch := range channels {
		clear(ch)
	}
}

// ZeroFrom zeroes every channel of a multi-channel view from frame start on.
func ZeroFrom[T any](channels [][]T, start int) {
	if start < 0 {
		start = 0
	}
	for _, ch := range channels {
		if start < len(ch) {
			clear(ch[start:])
		}
	}
}
