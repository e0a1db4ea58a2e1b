package sphere

import "math"

// The sphere is split into 12 base faces of equal area: four around the
// north pole, four straddling the equator and four around the south pole.
// Each face is an nside x nside grid of cells; x and y grow towards the
// face's northern vertex.

const (
	numFaces = 12
	halfPi   = math.Pi / 2
)

// jrll is the ring number (in units of nside) of each face's southern
// vertex; jpll is the longitude of each face centre in units of pi/4.
var (
	jrll = [numFaces]int{2, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 4}
	jpll = [numFaces]int{1, 3, 5, 7, 0, 2, 4, 6, 1, 3, 5, 7}
)

// Neighbour slots are visited in the order SW, W, NW, N, NE, E, SE, S.
var (
	nbXOffset = [MaxNeighbors]int{-1, -1, 0, 1, 1, 1, 0, -1}
	nbYOffset = [MaxNeighbors]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// nbFaceArray gives, for each of the nine 3x3 positions around a face and
// each face, the face that lies in that direction (-1 where three faces
// meet and the direction has no face).
var nbFaceArray = [9][numFaces]int{
	{8, 9, 10, 11, -1, -1, -1, -1, 10, 11, 8, 9}, // S
	{5, 6, 7, 4, 8, 9, 10, 11, 9, 10, 11, 8},     // SE
	{-1, -1, -1, -1, 5, 6, 7, 4, -1, -1, -1, -1}, // E
	{4, 5, 6, 7, 11, 8, 9, 10, 11, 8, 9, 10},     // SW
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11},       // centre
	{1, 2, 3, 0, 0, 1, 2, 3, 5, 6, 7, 4},         // NE
	{-1, -1, -1, -1, 7, 4, 5, 6, -1, -1, -1, -1}, // W
	{3, 0, 1, 2, 3, 0, 1, 2, 4, 5, 6, 7},         // NW
	{2, 3, 0, 1, -1, -1, -1, -1, 0, 1, 2, 3},     // N
}

// nbSwapArray holds coordinate fix-ups applied when stepping into a
// neighbouring face, indexed by direction and face row (face/4).
// Bit 1 mirrors x, bit 2 mirrors y, bit 4 swaps x and y.
var nbSwapArray = [9][3]int{
	{0, 0, 3}, // S
	{0, 0, 6}, // SE
	{0, 0, 0}, // E
	{0, 0, 5}, // SW
	{0, 0, 0}, // centre
	{5, 0, 0}, // NE
	{0, 0, 0}, // W
	{6, 0, 0}, // NW
	{3, 0, 0}, // N
}

func xyf2pix(nside, x, y, face int) int {
	return face*nside*nside + y*nside + x
}

func pix2xyf(nside, pix int) (x, y, face int) {
	npface := nside * nside
	face = pix / npface
	rem := pix % npface
	return rem % nside, rem / nside, face
}

// neighbours fills out with the cells around pix, NoNeighbor where a
// corner has only seven.
func neighbours(nside, pix int, out *[MaxNeighbors]int32) {
	ix, iy, face := pix2xyf(nside, pix)
	nsm1 := nside - 1
	if ix > 0 && ix < nsm1 && iy > 0 && iy < nsm1 {
		for m := 0; m < MaxNeighbors; m++ {
			out[m] = int32(xyf2pix(nside, ix+nbXOffset[m], iy+nbYOffset[m], face))
		}
		return
	}
	for m := 0; m < MaxNeighbors; m++ {
		x := ix + nbXOffset[m]
		y := iy + nbYOffset[m]
		nbnum := 4
		if x < 0 {
			x += nside
			nbnum--
		} else if x >= nside {
			x -= nside
			nbnum++
		}
		if y < 0 {
			y += nside
			nbnum -= 3
		} else if y >= nside {
			y -= nside
			nbnum += 3
		}
		f := nbFaceArray[nbnum][face]
		if f < 0 {
			out[m] = NoNeighbor
			continue
		}
		bits := nbSwapArray[nbnum][face>>2]
		if bits&1 != 0 {
			x = nside - x - 1
		}
		if bits&2 != 0 {
			y = nside - y - 1
		}
		if bits&4 != 0 {
			x, y = y, x
		}
		out[m] = int32(xyf2pix(nside, x, y, f))
	}
}

// center returns the unit vector through the middle of cell pix.
func center(nside, pix int) Vec3 {
	ix, iy, face := pix2xyf(nside, pix)
	fn := float64(nside)
	return faceLocation((float64(ix)+0.5)/fn, (float64(iy)+0.5)/fn, face)
}

// faceLocation maps continuous face coordinates x, y in [0,1] to the sphere.
func faceLocation(x, y float64, face int) Vec3 {
	jr := float64(jrll[face]) - x - y
	var nr, z, sth float64
	haveSth := false
	switch {
	case jr < 1:
		nr = jr
		tmp := nr * nr / 3
		z = 1 - tmp
		if z > 0.99 {
			sth = math.Sqrt(tmp * (2 - tmp))
			haveSth = true
		}
	case jr > 3:
		nr = 4 - jr
		tmp := nr * nr / 3
		z = tmp - 1
		if z < -0.99 {
			sth = math.Sqrt(tmp * (2 - tmp))
			haveSth = true
		}
	default:
		nr = 1
		z = (2 - jr) * 2 / 3
	}

	tmp := float64(jpll[face])*nr + x - y
	if tmp < 0 {
		tmp += 8
	}
	if tmp >= 8 {
		tmp -= 8
	}
	phi := 0.0
	if nr >= 1e-15 {
		phi = 0.5 * halfPi * tmp / nr
	}
	if !haveSth {
		sth = math.Sqrt((1 - z) * (1 + z))
	}
	return Vec3{X: sth * math.Cos(phi), Y: sth * math.Sin(phi), Z: z}
}

// locate returns the cell containing direction v.
func locate(nside int, v Vec3) int {
	v = v.Normalize()
	z := v.Z
	za := math.Abs(z)
	tt := math.Mod(math.Atan2(v.Y, v.X)/halfPi, 4)
	if tt < 0 {
		tt += 4
	}
	if tt >= 4 {
		tt = 0
	}
	fn := float64(nside)

	if za <= 2.0/3.0 {
		temp1 := fn * (0.5 + tt)
		temp2 := fn * z * 0.75
		jp := int(temp1 - temp2)
		jm := int(temp1 + temp2)
		ifp := jp / nside
		ifm := jm / nside
		var face int
		switch {
		case ifp == ifm:
			face = ifp | 4
		case ifp < ifm:
			face = ifp
		default:
			face = ifm + 8
		}
		ix := jm % nside
		iy := nside - (jp % nside) - 1
		return xyf2pix(nside, ix, iy, face)
	}

	ntt := int(tt)
	if ntt > 3 {
		ntt = 3
	}
	tp := tt - float64(ntt)
	tmp := fn * math.Sqrt(3*(1-za))
	jp := int(tp * tmp)
	jm := int((1 - tp) * tmp)
	if jp > nside-1 {
		jp = nside - 1
	}
	if jm > nside-1 {
		jm = nside - 1
	}
	if z > 0 {
		return xyf2pix(nside, nside-jm-1, nside-jp-1, ntt)
	}
	return xyf2pix(nside, jp, jm, ntt+8)
}
