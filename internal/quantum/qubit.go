package quantum

import "math"

// qubit holds the amplitudes of a single two-level system.
// Gates return a new value; qubits are never mutated in place.
type qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

// zeroQubit returns a qubit prepared in |0⟩.
func zeroQubit() qubit {
	return qubit{alpha: 1}
}

// hadamard applies the Hadamard gate:
//
//	H = 1/√2 * [1  1]
//	           [1 -1]
func (q qubit) hadamard() qubit {
	invRoot2 := complex(1/math.Sqrt2, 0)
	return qubit{
		alpha: (q.alpha + q.beta) * invRoot2,
		beta:  (q.alpha - q.beta) * invRoot2,
	}
}

// rotateY applies the Ry(θ) rotation:
//
//	Ry(θ) = [cos(θ/2)  -sin(θ/2)]
//	        [sin(θ/2)   cos(θ/2)]
func (q qubit) rotateY(theta float64) qubit {
	c := complex(math.Cos(theta/2), 0)
	s := complex(math.Sin(theta/2), 0)
	return qubit{
		alpha: c*q.alpha - s*q.beta,
		beta:  s*q.alpha + c*q.beta,
	}
}

// probOne returns the probability of measuring |1⟩.
func (q qubit) probOne() float64 {
	re := real(q.beta)
	im := imag(q.beta)
	return re*re + im*im
}
