// Package blend implements the fixed-point kernels that composite overlay
// planes into video planes.
//
// Coverage and global alpha are both 8-bit, so their product lies in
// 0..65025 (255*255). All kernels divide with round-half-up integer
// division; the results are exact, not approximations, because rounding
// drift here shows up as banding around subtitle edges.
package blend

// alphaOne is full opacity in the coverage*globalAlpha domain.
const alphaOne = 255 * 255

// divRound255 divides x by 255, rounding half up.
func divRound255(x uint32) uint32 {
	return (x + 127) / 255
}

// divRound65025 divides x by 65025, rounding half up.
func divRound65025(x uint32) uint32 {
	return (x + alphaOne/2) / alphaOne
}

// mulAlpha combines an 8-bit coverage value with the global alpha multiplier.
func mulAlpha(coverage, global uint8) uint32 {
	return uint32(coverage) * uint32(global)
}

// clampMax saturates v at the largest sample value.
func clampMax(v, maxVal uint32) uint32 {
	if v > maxVal {
		return maxVal
	}
	return v
}
