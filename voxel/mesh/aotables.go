package mesh

import "github.com/voxelrt/enginecore/voxel/coord"

// aoCurve maps an occluder count in [0,3] to a vertex AO factor
// (spec.md §4.I.c), grounded on original_source's AO_CURVE.
var aoCurve = [4]float32{1.0, 0.7, 0.5, 0.2}

// directionalShade is the fixed per-face brightness multiplier
// (spec.md §4.I.b), grounded on original_source's GetDirectionalShade.
var directionalShade = [6]float32{
	coord.North: 0.75,
	coord.South: 0.8,
	coord.East:  0.7,
	coord.West:  0.6,
	coord.Up:    1.0,
	coord.Down:  0.5,
}

// aoOffset is one occluder-sampling offset relative to the face's block.
type aoOffset struct{ dx, dy, dz int32 }

// aoVertexOffsets holds the {side1, side2, corner} sampling triple for one
// quad vertex.
type aoVertexOffsets [3]aoOffset

// aoOffsetTable[dir][vertex] is the {side1, side2, corner} offset triple
// for that vertex of a face in direction dir, in the v0..v3 winding order
// RenderFace.Quad uses. Grounded verbatim on original_source's
// AO_OFFSETS_{UP,DOWN,NORTH,SOUTH,EAST,WEST} tables.
var aoOffsetTable = [6][4]aoVertexOffsets{
	coord.Up: {
		{{-1, 0, 1}, {0, -1, 1}, {-1, -1, 1}},
		{{1, 0, 1}, {0, -1, 1}, {1, -1, 1}},
		{{1, 0, 1}, {0, 1, 1}, {1, 1, 1}},
		{{-1, 0, 1}, {0, 1, 1}, {-1, 1, 1}},
	},
	coord.Down: {
		{{-1, 0, -1}, {0, -1, -1}, {-1, -1, -1}},
		{{-1, 0, -1}, {0, 1, -1}, {-1, 1, -1}},
		{{1, 0, -1}, {0, 1, -1}, {1, 1, -1}},
		{{1, 0, -1}, {0, -1, -1}, {1, -1, -1}},
	},
	coord.North: {
		{{-1, 1, 0}, {0, 1, -1}, {-1, 1, -1}},
		{{-1, 1, 0}, {0, 1, 1}, {-1, 1, 1}},
		{{1, 1, 0}, {0, 1, 1}, {1, 1, 1}},
		{{1, 1, 0}, {0, 1, -1}, {1, 1, -1}},
	},
	coord.South: {
		{{1, -1, 0}, {0, -1, -1}, {1, -1, -1}},
		{{1, -1, 0}, {0, -1, 1}, {1, -1, 1}},
		{{-1, -1, 0}, {0, -1, 1}, {-1, -1, 1}},
		{{-1, -1, 0}, {0, -1, -1}, {-1, -1, -1}},
	},
	coord.East: {
		{{1, 1, 0}, {1, 0, -1}, {1, 1, -1}},
		{{1, 1, 0}, {1, 0, 1}, {1, 1, 1}},
		{{1, -1, 0}, {1, 0, 1}, {1, -1, 1}},
		{{1, -1, 0}, {1, 0, -1}, {1, -1, -1}},
	},
	coord.West: {
		{{-1, -1, 0}, {-1, 0, -1}, {-1, -1, -1}},
		{{-1, -1, 0}, {-1, 0, 1}, {-1, -1, 1}},
		{{-1, 1, 0}, {-1, 0, 1}, {-1, 1, 1}},
		{{-1, 1, 0}, {-1, 0, -1}, {-1, 1, -1}},
	},
}

// vertexAO applies the Minecraft-style smooth-lighting formula: a fully
// enclosed corner (both edge neighbors occluding) is maximally dark
// regardless of the diagonal, otherwise AO falls off with the occluder
// count (spec.md §4.I.c).
func vertexAO(side1, side2, corner bool) float32 {
	occluderCount := 0
	if side1 && side2 {
		occluderCount = 3
	} else {
		if side1 {
			occluderCount++
		}
		if side2 {
			occluderCount++
		}
		if corner {
			occluderCount++
		}
	}
	return aoCurve[occluderCount]
}
