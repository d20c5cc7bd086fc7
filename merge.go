package hashtrie

// MergeInPlace sets every entry of the given maps into m. On key
// collisions the later map wins. Fails with ErrImmutableMutation if m
// is frozen.
func (m *Map[K, V]) MergeInPlace(others ...*Map[K, V]) error {
	for _, o := range others {
		var err error
		o.Each(func(k K, v V) bool {
			_, err = m.Put(k, v)
			return err != nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// MergeInPlaceWith is MergeInPlace with a combiner deciding collisions:
// the existing value is passed first, the incoming one second.
func (m *Map[K, V]) MergeInPlaceWith(combine func(old, incoming V) V, others ...*Map[K, V]) error {
	for _, o := range others {
		var err error
		o.Each(func(k K, v V) bool {
			if old, ok := m.Get(k); ok {
				v = combine(old, v)
			}
			_, err = m.Put(k, v)
			return err != nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Merge returns a frozen map holding the union of m and the given maps,
// later maps winning collisions. m itself ends up frozen as a side
// effect of the branch.
func (m *Map[K, V]) Merge(others ...*Map[K, V]) (*Map[K, V], error) {
	nm := m.Branch()
	if err := nm.MergeInPlace(others...); err != nil {
		return nil, err
	}
	nm.Freeze()
	return nm, nil
}

// MergeWith is Merge with a combiner deciding collisions.
func (m *Map[K, V]) MergeWith(combine func(old, incoming V) V, others ...*Map[K, V]) (*Map[K, V], error) {
	nm := m.Branch()
	if err := nm.MergeInPlaceWith(combine, others...); err != nil {
		return nil, err
	}
	nm.Freeze()
	return nm, nil
}
