package viewport

// ScrollRequest asks the rendering target to scroll the code pane.
type ScrollRequest struct {
	Top    int
	Line   int
	Smooth bool
}

// Controller owns the scroll state of one editor pane. The gutter and code pane always
// share the same scroll offset; the sync callbacks mirror a change to the other pane and
// re-entrant scroll events they cause are ignored.
type Controller struct {
	lineHeight      int
	containerHeight int
	totalLines      int
	buffer          int

	top     int
	syncing bool
	request *ScrollRequest

	// SyncGutter is called with the new offset after the code pane scrolls.
	SyncGutter func(top int)

	// SyncCode is called with the new offset after the gutter scrolls.
	SyncCode func(top int)
}

// NewController creates a controller for lines of lineHeight pixels.
func NewController(lineHeight, buffer int) *Controller {
	return &Controller{lineHeight: max(1, lineHeight), buffer: max(0, buffer)}
}

// SetContainer sets the viewport height.
func (c *Controller) SetContainer(height int) {
	c.containerHeight = max(0, height)
	c.top = c.clamp(c.top)
}

// SetLineHeight changes the line height, keeping the first visible line in place.
func (c *Controller) SetLineHeight(height int) {
	first := c.top / c.lineHeight
	c.lineHeight = max(1, height)
	c.top = c.clamp(first * c.lineHeight)
}

// SetTotalLines sets the number of lines in the buffer.
func (c *Controller) SetTotalLines(total int) {
	c.totalLines = max(0, total)
	c.top = c.clamp(c.top)
}

// LineHeight returns the current line height.
func (c *Controller) LineHeight() int {
	return c.lineHeight
}

// ScrollTop returns the shared scroll offset.
func (c *Controller) ScrollTop() int {
	return c.top
}

// MaxScrollTop returns the largest valid offset.
func (c *Controller) MaxScrollTop() int {
	return max(0, c.totalLines*c.lineHeight-c.containerHeight)
}

// ScrollCode handles a scroll of the code pane.
func (c *Controller) ScrollCode(top int) {
	c.scroll(top, c.SyncGutter)
}

// ScrollGutter handles a scroll of the gutter.
func (c *Controller) ScrollGutter(top int) {
	c.scroll(top, c.SyncCode)
}

func (c *Controller) scroll(top int, mirror func(int)) {
	if c.syncing {
		return
	}
	c.syncing = true
	defer func() { c.syncing = false }()

	c.top = c.clamp(top)
	if mirror != nil {
		mirror(c.top)
	}
}

// Window returns the lines to render at the current offset.
func (c *Controller) Window() Window {
	return Compute(c.totalLines, c.containerHeight, c.lineHeight, c.top, c.buffer)
}

// Visible reports whether line is entirely inside the viewport, ignoring the buffer.
func (c *Controller) Visible(line int) bool {
	lineTop := line * c.lineHeight
	return line >= 0 && line < c.totalLines &&
		lineTop >= c.top && lineTop+c.lineHeight <= c.top+c.containerHeight
}

// EnsureVisible recenters on line unless it is already visible.
// It reports whether a scroll was requested.
func (c *Controller) EnsureVisible(line int) bool {
	if c.Visible(line) {
		return false
	}
	c.JumpToLine(line)
	return true
}

// JumpToLine recenters the viewport on line and records a smooth scroll request.
func (c *Controller) JumpToLine(line int) ScrollRequest {
	line = max(0, min(line, c.totalLines-1))
	top := line*c.lineHeight - c.containerHeight/2 + c.lineHeight/2
	c.ScrollCode(top)

	req := ScrollRequest{Top: c.top, Line: line, Smooth: true}
	c.request = &req
	return req
}

// TakeScrollRequest returns and clears the pending scroll request.
func (c *Controller) TakeScrollRequest() (ScrollRequest, bool) {
	if c.request == nil {
		return ScrollRequest{}, false
	}
	req := *c.request
	c.request = nil
	return req, true
}

func (c *Controller) clamp(top int) int {
	return max(0, min(top, c.MaxScrollTop()))
}
