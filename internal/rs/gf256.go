package rs

// GF(256) arithmetic with primitive polynomial 0x11D and generator element
// alpha=2, built once as package-level exp/log tables (read-only after
// init, so safe for concurrent use across chunks per spec.md §5).

const primPoly = 0x11D

var gfExp [512]byte // gfExp[i] = alpha^i, doubled so gfExp[i+255] == gfExp[i] for easy multiply-by-log-sum
var gfLog [256]int  // gfLog[gfExp[i]] = i for i in 0..254

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(x)
		gfLog[x] = i
		x <<= 1
		if x&0x100 != 0 {
			x ^= primPoly
		}
	}
	for i := 255; i < 512; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfAdd(a, b byte) byte { return a ^ b }

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[gfLog[a]+gfLog[b]]
}

func gfDiv(a, b byte) byte {
	if b == 0 {
		panic("rs: division by zero in GF(256)")
	}
	if a == 0 {
		return 0
	}
	return gfExp[(gfLog[a]-gfLog[b]+255)%255]
}

func gfPow(a byte, power int) byte {
	if a == 0 {
		if power == 0 {
			return 1
		}
		return 0
	}
	p := (gfLog[a] * power) % 255
	if p < 0 {
		p += 255
	}
	return gfExp[p]
}

func gfInverse(a byte) byte {
	return gfExp[255-gfLog[a]]
}

// Polynomials are represented as []byte with index 0 the highest-degree
// coefficient (so the last element is the constant term), matching the
// classical Berlekamp-Massey/Forney presentation.

func gfPolyScale(p []byte, x byte) []byte {
	out := make([]byte, len(p))
	for i, c := range p {
		out[i] = gfMul(c, x)
	}
	return out
}

func gfPolyAdd(p, q []byte) []byte {
	n := len(p)
	if len(q) > n {
		n = len(q)
	}
	out := make([]byte, n)
	for i := 0; i < len(p); i++ {
		out[i+n-len(p)] = p[i]
	}
	for i := 0; i < len(q); i++ {
		out[i+n-len(q)] ^= q[i]
	}
	return out
}

func gfPolyMul(p, q []byte) []byte {
	out := make([]byte, len(p)+len(q)-1)
	for j, qc := range q {
		if qc == 0 {
			continue
		}
		for i, pc := range p {
			if pc == 0 {
				continue
			}
			out[i+j] ^= gfMul(pc, qc)
		}
	}
	return out
}

// gfPolyEval evaluates p at x via Horner's method.
func gfPolyEval(p []byte, x byte) byte {
	y := p[0]
	for i := 1; i < len(p); i++ {
		y = gfMul(y, x) ^ p[i]
	}
	return y
}
