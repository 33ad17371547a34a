// store/apply.go
package store

// ApplyUpdates merges updates into fields in place, resolving the array and
// field-delete sentinels. Backends call this under their own write locking.
func ApplyUpdates(fields map[string]interface{}, updates map[string]interface{}) {
	for k, v := range updates {
		switch op := v.(type) {
		case ArrayUnionOp:
			existing := Strings(fields, k)
			for _, raw := range op.Values {
				val, _ := raw.(string)
				if !containsString(existing, val) {
					existing = append(existing, val)
				}
			}
			fields[k] = existing
		case ArrayRemoveOp:
			existing := Strings(fields, k)
			kept := make([]string, 0, len(existing))
			for _, e := range existing {
				remove := false
				for _, raw := range op.Values {
					if val, _ := raw.(string); val == e {
						remove = true
						break
					}
				}
				if !remove {
					kept = append(kept, e)
				}
			}
			fields[k] = kept
		case DeleteFieldOp:
			delete(fields, k)
		default:
			fields[k] = v
		}
	}
}

func containsString(list []string, v string) bool {
	for _, e := range list {
		if e == v {
			return true
		}
	}
	return false
}
