package noise

import (
	"fmt"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
)

// PermutationSize is the number of distinct hash values; tables hold
// twice as many entries so a second lookup never needs wrapping.
const PermutationSize = 256

var errNilSource = fmt.Errorf("%w: source is nil", ErrInvalidArgument)

// Ken Perlin's reference permutation.
var canonicalPermutation = [PermutationSize]int{
	151, 160, 137, 91, 90, 15, 131, 13, 201, 95, 96, 53, 194, 233, 7, 225,
	140, 36, 103, 30, 69, 142, 8, 99, 37, 240, 21, 10, 23, 190, 6, 148,
	247, 120, 234, 75, 0, 26, 197, 62, 94, 252, 219, 203, 117, 35, 11, 32,
	57, 177, 33, 88, 237, 149, 56, 87, 174, 20, 125, 136, 171, 168, 68, 175,
	74, 165, 71, 134, 139, 48, 27, 166, 77, 146, 158, 231, 83, 111, 229, 122,
	60, 211, 133, 230, 220, 105, 92, 41, 55, 46, 245, 40, 244, 102, 143, 54,
	65, 25, 63, 161, 1, 216, 80, 73, 209, 76, 132, 187, 208, 89, 18, 169,
	200, 196, 135, 130, 116, 188, 159, 86, 164, 100, 109, 198, 173, 186, 3, 64,
	52, 217, 226, 250, 124, 123, 5, 202, 38, 147, 118, 126, 255, 82, 85, 212,
	207, 206, 59, 227, 47, 16, 58, 17, 182, 189, 28, 42, 223, 183, 170, 213,
	119, 248, 152, 2, 44, 154, 163, 70, 221, 153, 101, 155, 167, 43, 172, 9,
	129, 22, 39, 253, 19, 98, 108, 110, 79, 113, 224, 232, 178, 185, 112, 104,
	218, 246, 97, 228, 251, 34, 242, 193, 238, 210, 144, 12, 191, 179, 162, 241,
	81, 51, 145, 235, 249, 14, 239, 107, 49, 192, 214, 31, 181, 199, 106, 157,
	184, 84, 204, 176, 115, 121, 50, 45, 127, 4, 150, 254, 138, 236, 205, 93,
	222, 114, 67, 29, 24, 72, 243, 141, 128, 195, 78, 66, 215, 61, 156, 180,
}

// CanonicalPermutation returns a copy of the reference permutation.
func CanonicalPermutation() []int {
	return slices.Clone(canonicalPermutation[:])
}

// NewPermutation returns a 2*PermutationSize table: the canonical
// permutation followed by a Fisher-Yates shuffle of [0, PermutationSize)
// drawn from rng.
func NewPermutation(rng Rand) []int {
	p := make([]int, 2*PermutationSize)
	copy(p, canonicalPermutation[:])

	shuffled := p[PermutationSize:]
	for i := range shuffled {
		shuffled[i] = i
	}
	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return p
}

// Improved replaces dense per-cell gradient indexing with a hashed
// lookup through a permutation table into a small gradient set taken
// from the wrapped source.
type Improved struct {
	delegate
	p   []int
	set []mgl64.Vec2
}

// NewImproved draws the permutation from the wrapped source's random
// generator.
func NewImproved(inner Source) (*Improved, error) {
	if inner == nil {
		return nil, errNilSource
	}
	rng := inner.RandomSource()
	if rng == nil {
		return nil, fmt.Errorf("%w: source has no random generator", ErrInvalidArgument)
	}
	return NewImprovedWithTable(inner, NewPermutation(rng))
}

// NewImprovedWithTable uses p as the permutation table. p must hold
// exactly 2*PermutationSize values in [0, PermutationSize).
func NewImprovedWithTable(inner Source, p []int) (*Improved, error) {
	if inner == nil {
		return nil, errNilSource
	}
	if len(p) != 2*PermutationSize {
		return nil, fmt.Errorf("%w: permutation table must have %d entries (got %d)",
			ErrInvalidArgument, 2*PermutationSize, len(p))
	}
	for i, v := range p {
		if v < 0 || v >= PermutationSize {
			return nil, fmt.Errorf("%w: permutation entry %d out of range (got %d)", ErrInvalidArgument, i, v)
		}
	}

	gradients := inner.Gradients()
	if len(gradients) == 0 {
		return nil, fmt.Errorf("%w: source has no gradients", ErrInvalidArgument)
	}
	n := min(len(gradients), PermutationSize)

	return &Improved{
		delegate: delegate{inner: inner},
		p:        slices.Clone(p),
		set:      slices.Clone(gradients[:n]),
	}, nil
}

// Permutation returns a copy of the table.
func (n *Improved) Permutation() []int {
	return slices.Clone(n.p)
}

func (n *Improved) Gradient(x, y int) mgl64.Vec2 {
	const mask = PermutationSize - 1
	h := n.p[n.p[x&mask]+(y&mask)]
	return n.set[h%len(n.set)]
}

func (n *Improved) Compute(x, y float64) float64 {
	return compute(n, x, y)
}

func (n *Improved) ComputeAt(x, y int) float64 {
	f := n.Frequency()
	return n.Compute(float64(x)*f, float64(y)*f)
}
