package validator

import "strconv"

// path builds JSON path strings of the form "a.b[3].c", per the
// serialization shape in spec §6. It is copy-on-append so callers can
// branch a path for a nested call without the callee's writes leaking
// back into the caller's copy.
type path struct {
	segs []string
}

func (p path) field(name string) path {
	segs := make([]string, len(p.segs)+1)
	copy(segs, p.segs)
	segs[len(segs)-1] = name
	return path{segs: segs}
}

func (p path) index(i int) path {
	segs := make([]string, len(p.segs))
	copy(segs, p.segs)
	if len(segs) == 0 {
		return path{segs: []string{"[" + strconv.Itoa(i) + "]"}}
	}
	segs[len(segs)-1] += "[" + strconv.Itoa(i) + "]"
	return path{segs: segs}
}

func (p path) String() string {
	out := ""
	for i, s := range p.segs {
		if i > 0 && s[0] != '[' {
			out += "."
		}
		out += s
	}
	return out
}
