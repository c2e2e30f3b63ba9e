package confetti

import (
	"math/rand"
)

const DefaultCount = 20

var Glyphs = []string{"🎊", "🎉", "✨"}

// Piece holds the randomized parameters of one falling glyph.
// All pieces share one fall and one sway keyframe; these values parameterize them.
type Piece struct {
	Glyph           string
	FontSize        float64 // px
	Left            float64 // vw
	FallDuration    float64 // s
	SwayDuration    float64 // s
	InitialRotation float64 // deg
	FinalRotation   float64 // deg
	SwayAmount      float64 // px
}

// Generate returns count pieces drawn from rnd.
func Generate(rnd *rand.Rand, count int) []Piece {
	if count <= 0 {
		return nil
	}

	pieces := make([]Piece, 0, count)
	for range count {
		initialRotation := rnd.Float64() * 360

		pieces = append(pieces, Piece{
			Glyph:           Glyphs[rnd.Intn(len(Glyphs))],
			FontSize:        20 + rnd.Float64()*10,
			Left:            rnd.Float64() * 100,
			FallDuration:    2 + rnd.Float64()*2,
			SwayDuration:    1 + rnd.Float64(),
			InitialRotation: initialRotation,
			FinalRotation:   initialRotation + 360 + rnd.Float64()*360,
			SwayAmount:      30 + rnd.Float64()*30,
		})
	}

	return pieces
}
