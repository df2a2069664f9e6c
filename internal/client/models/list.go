package models

// Identified is implemented by every collection element addressed by id.
type Identified interface {
	Identity() string
}

// Prepend returns list with item at the front. An item whose id is already
// present replaces that element in place instead, so repeating the same add
// does not duplicate it.
func Prepend[T Identified](list []T, item T) []T {
	if indexOf(list, item.Identity()) >= 0 {
		return Replace(list, item)
	}
	out := make([]T, 0, len(list)+1)
	out = append(out, item)
	return append(out, list...)
}

// Replace returns a copy of list with the element sharing item's id swapped
// for item. Unknown ids leave the list unchanged.
func Replace[T Identified](list []T, item T) []T {
	out := make([]T, len(list))
	for i, v := range list {
		if v.Identity() == item.Identity() {
			out[i] = item
		} else {
			out[i] = v
		}
	}
	return out
}

// Remove returns a copy of list without the element with id.
func Remove[T Identified](list []T, id string) []T {
	out := make([]T, 0, len(list))
	for _, v := range list {
		if v.Identity() != id {
			out = append(out, v)
		}
	}
	return out
}

// Find returns the element with id.
func Find[T Identified](list []T, id string) (T, bool) {
	if i := indexOf(list, id); i >= 0 {
		return list[i], true
	}
	var zero T
	return zero, false
}

func indexOf[T Identified](list []T, id string) int {
	for i, v := range list {
		if v.Identity() == id {
			return i
		}
	}
	return -1
}
