package canonical

// MergePatch applies patch to target following JSON Merge Patch (RFC 7396):
// objects merge recursively, a null member deletes the key, and any other
// patch value replaces the target outright. Neither argument is modified.
func MergePatch(target, patch Value) Value {
	p, ok := patch.(*Object)
	if !ok {
		return Clone(patch)
	}

	var result *Object
	if t, ok := target.(*Object); ok {
		result = Clone(t).(*Object)
	} else {
		result = NewObject()
	}

	for _, k := range p.keys {
		pv := p.values[k]
		if pv == nil {
			result.Delete(k)
			continue
		}
		current, _ := result.Get(k)
		result.Set(k, MergePatch(current, pv))
	}
	return result
}
