package effect

// Compose flattens the given effects into the smallest equivalent value:
// None for zero meaningful children, the child itself for one, Multiple
// otherwise. Nested None and Multiple values are collapsed.
func Compose(effects ...Effect) Effect {
	flat := make([]Effect, 0, len(effects))
	flat = appendFlat(flat, effects)
	switch len(flat) {
	case 0:
		return None{}
	case 1:
		return flat[0]
	default:
		return Multiple{Effects: flat}
	}
}

func appendFlat(dst []Effect, effects []Effect) []Effect {
	for _, e := range effects {
		switch v := e.(type) {
		case nil:
		case None:
		case Multiple:
			dst = appendFlat(dst, v.Effects)
		default:
			dst = append(dst, v)
		}
	}
	return dst
}

// Flatten expands an effect tree into a flat slice, dropping None nodes.
// Hosts use it to apply effects in emission order.
func Flatten(e Effect) []Effect {
	return appendFlat(nil, []Effect{e})
}
