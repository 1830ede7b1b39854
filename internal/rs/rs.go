// Package rs implements systematic Reed-Solomon encoding and decoding over
// GF(256) (primitive polynomial 0x11D, generator alpha=2): Berlekamp-Massey
// for the error locator, a brute-force Chien search for error positions, and
// Forney's algorithm for error magnitudes. It tolerates up to floor(nsym/2)
// symbol errors at unknown positions per codeword.
package rs

import "errors"

// ErrRSDecodeFailure is returned when the codeword carries more errors than
// nsym/2 can correct. Callers fall back to the raw systematic prefix of the
// codeword and rely on an outer checksum (the chunk CRC-32) to reject a
// corrupt result, per spec.md §4.5.
var ErrRSDecodeFailure = errors.New("rs: too many errors to correct")

// ErrMessageTooLong is returned when message length + nsym would exceed the
// 255-symbol GF(256) codeword limit.
var ErrMessageTooLong = errors.New("rs: message + nsym exceeds 255-byte codeword limit")

// Codec is a systematic Reed-Solomon encoder/decoder for a fixed parity
// length. It holds no mutable state; Encode/Decode are pure functions of
// their arguments.
type Codec struct {
	Nsym int
}

// New constructs a Codec with nsym parity symbols.
func New(nsym int) *Codec {
	return &Codec{Nsym: nsym}
}

func generatorPoly(nsym int) []byte {
	gen := []byte{1}
	for i := 0; i < nsym; i++ {
		gen = gfPolyMul(gen, []byte{1, gfPow(2, i)})
	}
	return gen
}

// Encode appends c.Nsym parity bytes to msg, returning the systematic
// codeword [msg ‖ parity]. len(msg)+c.Nsym must not exceed 255.
func (c *Codec) Encode(msg []byte) ([]byte, error) {
	if len(msg)+c.Nsym > 255 {
		return nil, ErrMessageTooLong
	}
	gen := generatorPoly(c.Nsym)
	out := make([]byte, len(msg)+c.Nsym)
	copy(out, msg)
	for i := 0; i < len(msg); i++ {
		coef := out[i]
		if coef == 0 {
			continue
		}
		for j := 1; j < len(gen); j++ {
			out[i+j] ^= gfMul(gen[j], coef)
		}
	}
	copy(out, msg) // the division above overwrote the message positions
	return out, nil
}

func (c *Codec) calcSyndromes(codeword []byte) []byte {
	synd := make([]byte, c.Nsym+1)
	for i := 0; i < c.Nsym; i++ {
		synd[i+1] = gfPolyEval(codeword, gfPow(2, i))
	}
	return synd
}

func allZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// findErrorLocator runs Berlekamp-Massey against the (padded) syndrome
// array to produce the error locator polynomial Lambda(x), high-degree
// coefficient first (so the constant term Lambda_0=1 is the last element).
func (c *Codec) findErrorLocator(synd []byte) ([]byte, error) {
	errLoc := []byte{1}
	oldLoc := []byte{1}
	for i := 0; i < c.Nsym; i++ {
		oldLoc = append(oldLoc, 0)
		k := i + 1
		delta := synd[k]
		for j := 1; j < len(errLoc); j++ {
			if k-j < 0 {
				continue
			}
			delta ^= gfMul(errLoc[len(errLoc)-1-j], synd[k-j])
		}
		if delta != 0 {
			if len(oldLoc) > len(errLoc) {
				newLoc := gfPolyScale(oldLoc, delta)
				oldLoc = gfPolyScale(errLoc, gfInverse(delta))
				errLoc = newLoc
			}
			errLoc = gfPolyAdd(errLoc, gfPolyScale(oldLoc, delta))
		}
	}

	start := 0
	for start < len(errLoc)-1 && errLoc[start] == 0 {
		start++
	}
	errLoc = errLoc[start:]

	errs := len(errLoc) - 1
	if errs*2 > c.Nsym {
		return nil, ErrRSDecodeFailure
	}
	return errLoc, nil
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, v := range b {
		out[len(b)-1-i] = v
	}
	return out
}

// findErrorPositions locates the roots of the reciprocal of errLoc by
// brute-force Chien search over the n possible codeword positions. It
// returns, for each root found, the array position of the error and the
// locator value X = alpha^(n-1-pos), aligned by index.
func findErrorPositions(errLoc []byte, n int) (positions []int, locators []byte, err error) {
	recip := reversed(errLoc)
	want := len(errLoc) - 1
	for i := 0; i < n; i++ {
		x := gfPow(2, i)
		if gfPolyEval(recip, x) == 0 {
			positions = append(positions, n-1-i)
			locators = append(locators, x)
		}
	}
	if len(positions) != want {
		return nil, nil, ErrRSDecodeFailure
	}
	return positions, locators, nil
}

// errataEvaluator computes Omega(x) = [S(x) * Lambda(x)] mod x^nsym, where
// S(x) = sum_{j=0}^{nsym-1} S_j x^j is rebuilt (high-degree first) from the
// padded syndrome array.
func (c *Codec) errataEvaluator(synd, errLoc []byte) []byte {
	sArr := reversed(synd)[:c.Nsym]
	prod := gfPolyMul(sArr, errLoc)
	if len(prod) > c.Nsym {
		prod = prod[len(prod)-c.Nsym:]
	}
	return prod
}

// derivative computes the formal derivative of errLoc (high-degree first):
// in characteristic 2, only odd-degree terms survive.
func derivative(errLoc []byte) []byte {
	l := len(errLoc) - 1
	if l <= 0 {
		return []byte{0}
	}
	out := make([]byte, l)
	for i := 1; i <= l; i += 2 {
		coef := errLoc[l-i]
		d := i - 1
		j := l - 1 - d
		out[j] = coef
	}
	return out
}

// Decode recovers the systematic message from codeword, correcting up to
// floor(nsym/2) symbol errors at unknown positions via Berlekamp-Massey,
// Chien search, and Forney's algorithm. It returns the corrected message
// (the first len(codeword)-nsym bytes) and the number of symbols corrected.
func (c *Codec) Decode(codeword []byte) ([]byte, int, error) {
	if len(codeword) <= c.Nsym {
		return nil, 0, errors.New("rs: codeword shorter than parity length")
	}
	synd := c.calcSyndromes(codeword)
	if allZero(synd[1:]) {
		return append([]byte(nil), codeword[:len(codeword)-c.Nsym]...), 0, nil
	}

	errLoc, err := c.findErrorLocator(synd)
	if err != nil {
		return nil, 0, err
	}

	positions, locators, err := findErrorPositions(errLoc, len(codeword))
	if err != nil {
		return nil, 0, err
	}

	omega := c.errataEvaluator(synd, errLoc)
	lamPrime := derivative(errLoc)

	corrected := append([]byte(nil), codeword...)
	for idx, pos := range positions {
		x := locators[idx]
		xInv := gfInverse(x)
		omegaVal := gfPolyEval(omega, xInv)
		lamVal := gfPolyEval(lamPrime, xInv)
		if lamVal == 0 {
			return nil, 0, ErrRSDecodeFailure
		}
		magnitude := gfMul(x, gfDiv(omegaVal, lamVal))
		corrected[pos] ^= magnitude
	}

	verify := c.calcSyndromes(corrected)
	if !allZero(verify[1:]) {
		return nil, 0, ErrRSDecodeFailure
	}
	return corrected[:len(corrected)-c.Nsym], len(positions), nil
}
