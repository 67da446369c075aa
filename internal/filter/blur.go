package filter

// Blur convolves p with k along rows, then columns, in place.
// Samples beyond the edges repeat the edge sample.
func Blur(p *Plane, k Kernel) {
	if p == nil || k.IsIdentity() || p.Width == 0 || p.Height == 0 {
		return
	}

	temp := getTempBuffer(len(p.Pix))
	defer putTempBuffer(temp)

	blurRows(p.Pix, temp, p.Width, p.Height, k.Taps)
	blurColumns(temp, p.Pix, p.Width, p.Height, k.Taps)
}

// Sharpen applies an unsharp mask: p += amount * (p - blur(p)).
// The blur sigma is one sample. A non-positive amount is a no-op.
func Sharpen(p *Plane, amount float64) {
	if p == nil || amount <= 0 || p.Width == 0 || p.Height == 0 {
		return
	}

	blurred := getTempBuffer(len(p.Pix))
	defer putTempBuffer(blurred)
	copy(blurred, p.Pix)

	Blur(&Plane{Width: p.Width, Height: p.Height, Pix: blurred}, unsharpKernel)

	k := float32(amount)
	for i, v := range p.Pix {
		p.Pix[i] = v + k*(v-blurred[i])
	}
}

// blurRows convolves each row of src into dst.
func blurRows(src, dst []float32, w, h int, taps []float32) {
	for y := 0; y < h; y++ {
		row := src[y*w : (y+1)*w]
		out := dst[y*w : (y+1)*w]
		for x := range out {
			sum := row[x] * taps[0]
			for d := 1; d < len(taps); d++ {
				sum += taps[d] * (row[clampInt(x-d, 0, w-1)] + row[clampInt(x+d, 0, w-1)])
			}
			out[x] = sum
		}
	}
}

// blurColumns convolves each column of src into dst.
func blurColumns(src, dst []float32, w, h int, taps []float32) {
	for y := 0; y < h; y++ {
		out := dst[y*w : (y+1)*w]
		for x := range out {
			sum := src[y*w+x] * taps[0]
			for d := 1; d < len(taps); d++ {
				up := clampInt(y-d, 0, h-1)
				down := clampInt(y+d, 0, h-1)
				sum += taps[d] * (src[up*w+x] + src[down*w+x])
			}
			out[x] = sum
		}
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
