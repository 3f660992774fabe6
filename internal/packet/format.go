package packet

import "strconv"

func appendTree[T tree[N], N any](dst []byte, t T, n N) []byte {
	if t.kind(n) == KindInt {
		return strconv.AppendUint(dst, t.intOf(n), 10)
	}
	dst = append(dst, '[')
	for i := range t.size(n) {
		if i > 0 {
			dst = append(dst, ',')
		}
		dst = appendTree(dst, t, t.child(n, i))
	}
	return append(dst, ']')
}

// AppendText appends the canonical form of v (no whitespace) to dst.
func AppendText(dst []byte, v Value) []byte {
	return appendTree(dst, heapTree{}, &v)
}

// Format returns the canonical text of v.
func Format(v Value) string {
	return string(AppendText(nil, v))
}
