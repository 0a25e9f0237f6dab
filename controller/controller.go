// Package controller implements the two standard-controller shift
// registers read through $4016/$4017. Grounded on
// console/controller.go's strobe/buttons/idx struct shape and its
// "index > 7 reads back 1" behavior, generalized to jyane-jnes's
// convention of keeping the core decoupled from any windowing toolkit:
// the host polls its own input library and pushes button state in via
// UpdateButtons rather than this package reaching out to ebiten itself.
package controller

// Button bit positions, matching console/controller.go's ordering.
const (
	ButtonA = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

type port struct {
	strobe  bool
	buttons byte
	idx     byte
}

func (p *port) write(strobeHigh bool, live byte) {
	p.strobe = strobeHigh
	if strobeHigh {
		p.buttons = live
		p.idx = 0
	}
}

func (p *port) read() byte {
	if p.strobe {
		return p.buttons & 1
	}
	if p.idx > 7 {
		return 1
	}
	v := (p.buttons >> p.idx) & 1
	p.idx++
	return v
}

// Controller holds both standard-controller ports. $4016 writes set the
// strobe bit for both ports simultaneously (that's how the real hardware's
// single OUT0 line is wired); $4016/$4017 reads are per-port.
type Controller struct {
	ports [2]port
	live  [2]byte
}

// New returns a controller with no buttons pressed.
func New() *Controller {
	return &Controller{}
}

// UpdateButtons latches the host's current button state for each port. It
// takes effect immediately if strobe is currently held high (mirroring the
// real shift registers, which continuously reload while OUT0 is set), or at
// the next Write(1) otherwise.
func (c *Controller) UpdateButtons(p1, p2 byte) {
	c.live[0], c.live[1] = p1, p2
	for i := range c.ports {
		if c.ports[i].strobe {
			c.ports[i].buttons = c.live[i]
		}
	}
}

// Write handles a CPU write to $4016; bit 0 is the strobe line shared by
// both ports.
func (c *Controller) Write(val byte) {
	strobeHigh := val&1 != 0
	c.ports[0].write(strobeHigh, c.live[0])
	c.ports[1].write(strobeHigh, c.live[1])
}

// Read handles a CPU read of $4016 (port 0) or $4017 (port 1).
func (c *Controller) Read(port int) byte {
	return c.ports[port].read()
}
