package fcurve

import "fmt"

// NeedsResort reports whether any key is later than its successor.
func NeedsResort(c *Curve) bool {
	keys := c.Keys()
	for i := 1; i < len(keys); i++ {
		if keys[i-1].Center.X > keys[i].Center.X {
			return true
		}
	}
	return false
}

// Resort restores ascending time order after keys were moved, using
// repeated passes of adjacent swaps so keys with equal times keep their
// relative order. Afterwards every key's handles are put back on their own
// side of the center: handles that both crossed over are swapped, a single
// crossed handle is clamped to the center.
//
// Resort panics if ordering does not converge within len+1 passes.
func Resort(c *Curve) {
	keys := c.Keys()
	n := len(keys)
	if n == 0 {
		return
	}

	for pass := 0; ; pass++ {
		if pass > n {
			panic(fmt.Sprintf("fcurve: resort did not converge after %d passes", pass))
		}
		swapped := false
		for i := 0; i+1 < n; i++ {
			if keys[i].Center.X > keys[i+1].Center.X {
				keys[i], keys[i+1] = keys[i+1], keys[i]
				swapped = true
			}
		}
		if !swapped {
			break
		}
	}

	for i := range keys {
		k := &keys[i]
		if k.Left.X > k.Center.X && k.Right.X < k.Center.X {
			k.Left, k.Right = k.Right, k.Left
		} else {
			k.clampHandles()
		}
	}
}
