package fu

func Mean(a []float32) float32 {
	if len(a) == 0 {
		return 0
	}
	var c float64
	for _, x := range a {
		c += float64(x)
	}
	return float32(c / float64(len(a)))
}

func Nnz(a []float32) int {
	c := 0
	for _, x := range a {
		if x != 0 {
			c++
		}
	}
	return c
}

func Flatnr(a [][]float32) []float32 {
	n := 0
	for _, x := range a {
		n += len(x)
	}
	r := make([]float32, n)
	i := 0
	for _, x := range a {
		copy(r[i:i+len(x)], x)
		i += len(x)
	}
	return r
}
