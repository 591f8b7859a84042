package terrain

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/skyforge/skyforge/pkg/generic"
)

// RGB is a vertex color in linear [0,1] channels.
type RGB struct {
	R float64
	G float64
	B float64
}

// Color bands for the surface mesh.
var (
	colorRock  = RGB{R: 0.45, G: 0.42, B: 0.40}
	colorSand  = RGB{R: 0.78, G: 0.72, B: 0.52}
	colorGrass = RGB{R: 0.28, G: 0.52, B: 0.24}
)

// PatchParams selects sampling resolution and color banding for a patch.
type PatchParams struct {
	Size     float64
	Res      int // quads per edge; vertex count per edge is Res+1
	RockLine float64
	SandLine float64
	Jitter   float64
}

// Patch is the sampled terrain surface of one chunk: a regular grid of
// heights with one color per vertex. It is what the presentation layer turns
// into a mesh; the engine itself only ever reads Heights.
//
// Patches are recycled through a pool; call Release when the owning chunk is
// disposed and drop all references.
type Patch struct {
	Coord   ChunkCoord
	Size    float64
	Res     int
	Heights []float64
	Colors  []RGB
}

var patchPool = generic.NewPool(func() *Patch { return &Patch{} })

// BuildPatch samples the height field over the chunk's world footprint and
// assigns the per-vertex color band: rock above RockLine, sand below
// SandLine, jittered grass between. The jitter is a pure hash of the vertex's
// world grid index, so a vertex keeps its color across reloads even though
// feature placement does not.
func BuildPatch(coord ChunkCoord, p PatchParams) *Patch {
	side := p.Res + 1
	n := side * side

	patch := patchPool.Get()
	patch.Coord = coord
	patch.Size = p.Size
	patch.Res = p.Res
	if cap(patch.Heights) < n {
		patch.Heights = make([]float64, n)
		patch.Colors = make([]RGB, n)
	}
	patch.Heights = patch.Heights[:n]
	patch.Colors = patch.Colors[:n]

	cx, cz := coord.Center(p.Size)
	step := p.Size / float64(p.Res)
	half := p.Size / 2

	for iz := 0; iz < side; iz++ {
		for ix := 0; ix < side; ix++ {
			wx := cx - half + float64(ix)*step
			wz := cz - half + float64(iz)*step
			h := HeightAt(wx, wz)

			i := iz*side + ix
			patch.Heights[i] = h
			patch.Colors[i] = bandColor(h, p, coord, ix, iz)
		}
	}
	return patch
}

// HeightAtVertex returns the sampled elevation at grid vertex (ix, iz).
func (p *Patch) HeightAtVertex(ix, iz int) float64 {
	return p.Heights[iz*(p.Res+1)+ix]
}

// Release returns the patch's buffers to the pool. The caller must not touch
// the patch afterwards.
func (p *Patch) Release() {
	patchPool.Put(p)
}

func bandColor(h float64, p PatchParams, coord ChunkCoord, ix, iz int) RGB {
	switch {
	case h > p.RockLine:
		return colorRock
	case h < p.SandLine:
		return colorSand
	default:
		// World grid index, not local: border vertices shared by two chunks
		// hash identically.
		gx := int64(coord.X)*int64(p.Res) + int64(ix)
		gz := int64(coord.Z)*int64(p.Res) + int64(iz)
		j := (vertexNoise(gx, gz) - 0.5) * 2 * p.Jitter
		return RGB{
			R: clamp01(colorGrass.R + j*0.5),
			G: clamp01(colorGrass.G + j),
			B: clamp01(colorGrass.B + j*0.5),
		}
	}
}

// vertexNoise hashes a world grid index into [0,1).
func vertexNoise(gx, gz int64) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(gx))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(gz))
	return float64(xxhash.Sum64(buf[:])%1000) / 1000
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
