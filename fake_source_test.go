package dice

// fakeSource replays a fixed sequence of Intn results, letting the
// concrete end-to-end scenarios in spec.md §8 be reproduced face-for-face
// instead of relying on the real CSPRNG-backed default.
type fakeSource struct {
	draws []int
	i     int
}

func (f *fakeSource) Intn(max int) int {
	if f.i >= len(f.draws) {
		panic("fakeSource: ran out of scripted draws")
	}
	v := f.draws[f.i]
	f.i++
	return v
}

// facesSource builds a fakeSource from a list of 1-indexed face values a
// test wants drawFace to return, i.e. facesSource(8, 3, 9) makes the first
// three drawFace calls return 8, 3, 9 regardless of max.
func facesSource(faces ...int) *fakeSource {
	draws := make([]int, len(faces))
	for i, f := range faces {
		draws[i] = f - 1
	}
	return &fakeSource{draws: draws}
}
