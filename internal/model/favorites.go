package model

// FavoriteSet is an insertion-ordered set of site IDs.
type FavoriteSet struct {
	ids   []string
	index map[string]int
}

// NewFavoriteSet creates a set from ids. Duplicates are dropped.
func NewFavoriteSet(ids ...string) *FavoriteSet {
	f := &FavoriteSet{index: make(map[string]int)}
	for _, id := range ids {
		f.add(id)
	}
	return f
}

// Has reports membership. A nil set is empty.
func (f *FavoriteSet) Has(id string) bool {
	if f == nil {
		return false
	}
	_, ok := f.index[id]
	return ok
}

// Len returns the number of favorites.
func (f *FavoriteSet) Len() int {
	if f == nil {
		return 0
	}
	return len(f.ids)
}

// Toggle flips membership of id and returns whether it is now a favorite.
func (f *FavoriteSet) Toggle(id string) bool {
	if f.Has(id) {
		f.remove(id)
		return false
	}
	f.add(id)
	return true
}

// IDs returns the favorites in insertion order.
func (f *FavoriteSet) IDs() []string {
	if f == nil {
		return []string{}
	}
	out := make([]string, len(f.ids))
	copy(out, f.ids)
	return out
}

func (f *FavoriteSet) add(id string) {
	if _, ok := f.index[id]; ok {
		return
	}
	f.index[id] = len(f.ids)
	f.ids = append(f.ids, id)
}

func (f *FavoriteSet) remove(id string) {
	i := f.index[id]
	f.ids = append(f.ids[:i], f.ids[i+1:]...)
	delete(f.index, id)
	for j := i; j < len(f.ids); j++ {
		f.index[f.ids[j]] = j
	}
}
