package model

// PinThreshold is the bottom tolerance in lines: within this distance of
// the end of the transcript the viewport counts as pinned and follows
// new content.
const PinThreshold = 50

// PinController tracks whether the viewport is anchored to the newest
// content. It is pure state — the owning component performs the actual
// scrolling when a content update lands while pinned.
type PinController struct {
	pinned bool
}

// NewPinController starts pinned: a fresh view follows the conversation.
func NewPinController() PinController {
	return PinController{pinned: true}
}

// Pinned reports whether the view is anchored to the bottom.
func (p *PinController) Pinned() bool { return p.pinned }

// OnScroll recomputes pinning from the viewport geometry: top is the
// first visible line, total the full content height, visible the
// viewport height. It returns true only when the pinned state actually
// changed, so repeated identical geometry is a no-op and triggers no
// re-render.
func (p *PinController) OnScroll(top, total, visible int) (changed bool) {
	distanceFromBottom := total - top - visible
	pinned := distanceFromBottom < PinThreshold
	if pinned == p.pinned {
		return false
	}
	p.pinned = pinned
	return true
}

// OnSubmit forces pinning unconditionally: the view always jumps to
// follow a just-sent message, even if the user had scrolled away.
func (p *PinController) OnSubmit() {
	p.pinned = true
}
