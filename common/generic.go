package common

// There's no standard library package to deal with slices [grumble grumble]

// Contains returns whether `v` is in `slice`.
func Contains[T comparable](slice []T, v T) bool {
	for i := range slice {
		if slice[i] == v {
			return true
		}
	}
	return false
}

// ContainsAny returns whether any value in `values` is in `slice`.
func ContainsAny[T comparable](slice []T, values ...T) bool {
	for _, v := range values {
		if Contains(slice, v) {
			return true
		}
	}
	return false
}

// Chunk splits `slice` into chunks of at most `size` elements.
// The chunks share the backing array of `slice`.
func Chunk[T any](slice []T, size int) [][]T {
	if size <= 0 {
		return [][]T{slice}
	}

	chunks := make([][]T, 0, (len(slice)+size-1)/size)
	for size < len(slice) {
		slice, chunks = slice[size:], append(chunks, slice[0:size:size])
	}
	if len(slice) > 0 {
		chunks = append(chunks, slice)
	}
	return chunks
}
