package ledlayout

import (
	"fmt"
	"strconv"
	"strings"
)

// ParsePathData parses SVG path data ("M 10 10 L 90 10 ... Z") into a Path.
// Supported commands: M/m, L/l, H/h, V/v, C/c, S/s, Q/q, T/t, Z/z.
// Free-hand edits and glyph exports in this system only produce these; arc
// commands are rejected.
func ParsePathData(data string) (*Path, error) {
	s := &pathScanner{src: data}
	p := NewPath()

	var cmd byte
	var prevCtrl Point  // reflection point for S/T
	var prevCmd byte    // previous command, for reflection validity
	started := false    // a MoveTo has been seen

	for {
		s.skipSeparators()
		if s.eof() {
			break
		}

		if c := s.peek(); isCommand(c) {
			cmd = c
			s.next()
		} else if cmd == 0 {
			return nil, fmt.Errorf("ledlayout: path data must start with a command, got %q", c)
		} else if cmd == 'M' {
			// Implicit repetition of M is treated as L per the SVG spec.
			cmd = 'L'
		} else if cmd == 'm' {
			cmd = 'l'
		}

		rel := cmd >= 'a' && cmd <= 'z'
		op := upperCommand(cmd)
		cur := p.CurrentPoint()

		if op != 'M' && op != 'Z' && !started {
			return nil, fmt.Errorf("ledlayout: path data command %q before initial moveto", cmd)
		}

		switch op {
		case 'M':
			x, y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			if rel && started {
				x, y = cur.X+x, cur.Y+y
			}
			p.MoveTo(x, y)
			started = true
		case 'L':
			x, y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				x, y = cur.X+x, cur.Y+y
			}
			p.LineTo(x, y)
		case 'H':
			x, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				x += cur.X
			}
			p.LineTo(x, cur.Y)
		case 'V':
			y, err := s.number()
			if err != nil {
				return nil, err
			}
			if rel {
				y += cur.Y
			}
			p.LineTo(cur.X, y)
		case 'C':
			c1x, c1y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			c2x, c2y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			x, y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				c1x, c1y = cur.X+c1x, cur.Y+c1y
				c2x, c2y = cur.X+c2x, cur.Y+c2y
				x, y = cur.X+x, cur.Y+y
			}
			p.CubicTo(c1x, c1y, c2x, c2y, x, y)
			prevCtrl = Pt(c2x, c2y)
		case 'S':
			c2x, c2y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			x, y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				c2x, c2y = cur.X+c2x, cur.Y+c2y
				x, y = cur.X+x, cur.Y+y
			}
			c1 := reflectControl(cur, prevCtrl, prevCmd, 'C')
			p.CubicTo(c1.X, c1.Y, c2x, c2y, x, y)
			prevCtrl = Pt(c2x, c2y)
		case 'Q':
			cx, cy, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			x, y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				cx, cy = cur.X+cx, cur.Y+cy
				x, y = cur.X+x, cur.Y+y
			}
			p.QuadraticTo(cx, cy, x, y)
			prevCtrl = Pt(cx, cy)
		case 'T':
			x, y, err := s.coordPair()
			if err != nil {
				return nil, err
			}
			if rel {
				x, y = cur.X+x, cur.Y+y
			}
			c := reflectControl(cur, prevCtrl, prevCmd, 'Q')
			p.QuadraticTo(c.X, c.Y, x, y)
			prevCtrl = c
		case 'Z':
			p.Close()
		default:
			return nil, fmt.Errorf("ledlayout: unsupported path data command %q", cmd)
		}
		prevCmd = op
	}

	if !started {
		return nil, fmt.Errorf("ledlayout: empty path data")
	}
	return p, nil
}

// reflectControl returns the reflected control point for smooth curve
// commands. Reflection only applies when the previous command was of the same
// curve family; otherwise the current point is used, per the SVG spec.
func reflectControl(cur, prevCtrl Point, prevCmd, family byte) Point {
	smooth := map[byte]byte{'C': 'S', 'Q': 'T'}[family]
	if prevCmd != family && prevCmd != smooth {
		return cur
	}
	return Pt(2*cur.X-prevCtrl.X, 2*cur.Y-prevCtrl.Y)
}

// isCommand reports whether c is a supported path data command letter.
func isCommand(c byte) bool {
	return strings.IndexByte("MmLlHhVvCcSsQqTtZz", c) >= 0
}

// upperCommand folds a command letter to upper case.
func upperCommand(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

// pathScanner tokenizes path data: command letters and decimal numbers
// separated by whitespace or commas.
type pathScanner struct {
	src string
	pos int
}

func (s *pathScanner) eof() bool {
	return s.pos >= len(s.src)
}

func (s *pathScanner) peek() byte {
	return s.src[s.pos]
}

func (s *pathScanner) next() byte {
	c := s.src[s.pos]
	s.pos++
	return c
}

func (s *pathScanner) skipSeparators() {
	for !s.eof() {
		switch s.src[s.pos] {
		case ' ', '\t', '\n', '\r', ',':
			s.pos++
		default:
			return
		}
	}
}

// number scans one floating point number.
func (s *pathScanner) number() (float64, error) {
	s.skipSeparators()
	start := s.pos
	if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
		s.pos++
	}
	digits := false
	for !s.eof() {
		c := s.peek()
		if c >= '0' && c <= '9' {
			digits = true
			s.pos++
			continue
		}
		if c == '.' {
			s.pos++
			continue
		}
		if (c == 'e' || c == 'E') && digits {
			s.pos++
			if !s.eof() && (s.peek() == '+' || s.peek() == '-') {
				s.pos++
			}
			continue
		}
		break
	}
	if !digits {
		return 0, fmt.Errorf("ledlayout: expected number at offset %d in path data", start)
	}
	v, err := strconv.ParseFloat(s.src[start:s.pos], 64)
	if err != nil {
		return 0, fmt.Errorf("ledlayout: bad number %q in path data: %w", s.src[start:s.pos], err)
	}
	return v, nil
}

// coordPair scans an x,y coordinate pair.
func (s *pathScanner) coordPair() (float64, float64, error) {
	x, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := s.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
