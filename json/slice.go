/*
File    : remespath/json/slice.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/

package json

// NormIndex converts a possibly negative index into an absolute one for a
// container of the given length. The second return reports whether the
// normalized index is in bounds.
func NormIndex(i int64, length int) (int, bool) {
	if i < 0 {
		i += int64(length)
	}
	if i < 0 || i >= int64(length) {
		return 0, false
	}
	return int(i), true
}

// SliceIndices expands a compiled slice into the absolute indices it
// selects from a container of the given length, with the usual half-open
// right-exclusive semantics: negative bounds count from the end,
// out-of-range bounds clip, and a negative step walks backwards.
func SliceIndices(s *Slice, length int) []int {
	n := int64(length)
	step := int64(1)
	if s.Step != nil {
		step = *s.Step
	}
	var start, stop int64
	if step > 0 {
		start, stop = 0, n
	} else {
		start, stop = n-1, -1
	}
	clip := func(v int64) int64 {
		if v < 0 {
			v += n
		}
		if step > 0 {
			if v < 0 {
				return 0
			}
			if v > n {
				return n
			}
		} else {
			if v < -1 {
				return -1
			}
			if v > n-1 {
				return n - 1
			}
		}
		return v
	}
	if s.Start != nil {
		start = clip(*s.Start)
	}
	if s.Stop != nil {
		stop = clip(*s.Stop)
	}
	out := []int{}
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, int(i))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, int(i))
		}
	}
	return out
}
