package matrix

import "math"

// EulerTransform builds the 3×3 body-axis rotation matrix from three Euler
// angles (roll φ about x, pitch θ about y, yaw ψ about z, applied in that
// z-y-x order as is conventional in flight dynamics) — the body of the
// `eulertransform` operator. Angles are radians; EulerTransformDeg wraps
// this for the `eulertransformd` operator.
func EulerTransform(roll, pitch, yaw float64) *Dense {
	sr, cr := math.Sin(roll), math.Cos(roll)
	sp, cp := math.Sin(pitch), math.Cos(pitch)
	sy, cy := math.Sin(yaw), math.Cos(yaw)

	// R = Rz(yaw) * Ry(pitch) * Rx(roll)
	out, _ := NewDense(3, 3)
	out.data[0] = cy * cp
	out.data[1] = cy*sp*sr - sy*cr
	out.data[2] = cy*sp*cr + sy*sr
	out.data[3] = sy * cp
	out.data[4] = sy*sp*sr + cy*cr
	out.data[5] = sy*sp*cr - cy*sr
	out.data[6] = -sp
	out.data[7] = cp * sr
	out.data[8] = cp * cr

	return out
}

// EulerTransformDeg is EulerTransform with all three angles given in
// degrees — the body of the `eulertransformd` operator.
func EulerTransformDeg(rollDeg, pitchDeg, yawDeg float64) *Dense {
	const d2r = math.Pi / 180.0

	return EulerTransform(rollDeg*d2r, pitchDeg*d2r, yawDeg*d2r)
}
