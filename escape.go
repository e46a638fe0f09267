package mandel

// Sample is the escape-time iteration count of one pixel.
// The zero value is Interior: the orbit stayed bounded up to the cap.
type Sample uint16

const Interior Sample = 0

// Escape iterates z ← z² + c from z₀ = 0 with c = x + iy and reports the
// loop counter at which |z|² reached 4, or Interior if the counter hit maxIter first.
//
// The counter starts at 1 and is advanced after each iteration, before the
// bailout test, so the smallest count any point can report is 2.
// A maxIter of 1 classifies every point as Interior without iterating.
func Escape(x, y float64, maxIter uint16) Sample {
	var u, v, u2, v2 float64
	k := 1
	for ; k < int(maxIter) && u2+v2 < 4.0; k++ {
		// float64() rounds the product and keeps the compiler from fusing it
		// into an FMA, so counts agree across architectures.
		v = float64(2*u*v) + y
		u = u2 - v2 + x
		u2 = u * u
		v2 = v * v
	}
	if k >= int(maxIter) {
		return Interior
	}
	return Sample(k)
}
