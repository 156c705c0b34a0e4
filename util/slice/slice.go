package slice

func FindPos[T comparable](s []T, v T) int {
	for i, sv := range s {
		if sv == v {
			return i
		}
	}
	return -1
}

func Find[T any](s []T, cond func(T) bool) int {
	for i, sv := range s {
		if cond(sv) {
			return i
		}
	}
	return -1
}

func Filter[T any](s []T, keep func(T) bool) []T {
	n := make([]T, 0, len(s))
	for _, v := range s {
		if keep(v) {
			n = append(n, v)
		}
	}
	return n
}

func Remove[T comparable](s []T, v T) []T {
	var n int
	for _, x := range s {
		if x != v {
			s[n] = x
			n++
		}
	}
	return s[:n]
}

func RemoveAt[T any](s []T, pos int) []T {
	if pos < 0 || pos >= len(s) {
		return s
	}
	return append(s[:pos], s[pos+1:]...)
}

func Insert[T any](s []T, v T, pos int) []T {
	if len(s) <= pos {
		return append(s, v)
	}
	if pos == 0 {
		return append([]T{v}, s...)
	}
	return append(s[:pos], append([]T{v}, s[pos:]...)...)
}
