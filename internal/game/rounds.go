package game

import "github.com/lci-upiiz/adivina-planeta/internal/catalog"

// Generator picks targets and glimpses for new rounds.
type Generator struct {
	cat *catalog.Catalog
	src Source
}

// NewGenerator wires a generator over a validated catalog. A nil src means
// DefaultSource().
func NewGenerator(cat *catalog.Catalog, src Source) *Generator {
	if src == nil {
		src = DefaultSource()
	}
	return &Generator{cat: cat, src: src}
}

// Catalog returns the catalog the generator draws from.
func (g *Generator) Catalog() *catalog.Catalog { return g.cat }

// PickTarget returns a uniformly random planet. Repeats across rounds are allowed.
func (g *Generator) PickTarget() catalog.Planet {
	return g.cat.At(g.src.Intn(g.cat.Len()))
}

// PickCrops permutes the full grid and keeps the first CropsPerRound cells,
// which samples without replacement. No spacing between cells is enforced.
func (g *Generator) PickCrops() [CropsPerRound]CropPosition {
	cells := GridPositions()
	g.src.Shuffle(len(cells), func(i, j int) { cells[i], cells[j] = cells[j], cells[i] })
	var out [CropsPerRound]CropPosition
	copy(out[:], cells[:CropsPerRound])
	return out
}

// GridPositions lists every cell offset in row-major order: (j*CellSize, i*CellSize).
func GridPositions() [GridSize * GridSize]CropPosition {
	var out [GridSize * GridSize]CropPosition
	for i := 0; i < GridSize; i++ {
		for j := 0; j < GridSize; j++ {
			out[i*GridSize+j] = CropPosition{X: j * CellSize, Y: i * CellSize}
		}
	}
	return out
}

// IsGridPosition reports whether p is one of the grid cell offsets.
func IsGridPosition(p CropPosition) bool {
	return p.X >= 0 && p.Y >= 0 &&
		p.X < ImageSize && p.Y < ImageSize &&
		p.X%CellSize == 0 && p.Y%CellSize == 0
}
