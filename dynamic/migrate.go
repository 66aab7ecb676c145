package dynamic

import "fmt"

// ============================================================
// Migration Application
// ============================================================
//
// A migration rewrites one dynamic value into another, structurally,
// before any typed reconstruction happens. Rules compose by sequential
// application and know nothing about target schemas.

// Migration is a single structural rewrite step.
type Migration interface {
	Apply(*Value) (*Value, error)
}

// MigrationFunc adapts a plain function to the Migration interface.
type MigrationFunc func(*Value) (*Value, error)

// Apply runs the function.
func (f MigrationFunc) Apply(v *Value) (*Value, error) { return f(v) }

// ApplyMigrations applies an ordered slice of rules right-to-left: the
// last rule runs first. A failing rule short-circuits the rest and becomes
// the final result.
func ApplyMigrations(v *Value, rules []Migration) (*Value, error) {
	for i := len(rules) - 1; i >= 0; i-- {
		next, err := rules[i].Apply(v)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}

// Path addresses a record nested inside a value: each element names a
// record field to descend into. Descent passes transparently through Some
// wrappers and enum payloads.
type Path []string

// UpdateAt rewrites the value at a path with fn, rebuilding the spine
// immutably.
func UpdateAt(path Path, fn func(*Value) (*Value, error)) Migration {
	return MigrationFunc(func(v *Value) (*Value, error) {
		return updateAt(v, path, fn)
	})
}

// AddField inserts a new field into the record at path. Adding a field
// that already exists fails.
func AddField(path Path, name string, value *Value) Migration {
	return UpdateAt(path, func(v *Value) (*Value, error) {
		if v.Kind() != KindRecord {
			return nil, fmt.Errorf("dynamic: add field %s: %s is not a record", name, v.describe())
		}
		if _, exists := v.GetField(name); exists {
			return nil, fmt.Errorf("dynamic: add field %s: record %s already has it", name, v.typeID)
		}
		fields := append(append([]Field(nil), v.fields...), FieldOf(name, value))
		return Record(v.typeID, fields...), nil
	})
}

// RenameField relabels a field of the record at path, keeping its value
// and position.
func RenameField(path Path, from, to string) Migration {
	return UpdateAt(path, func(v *Value) (*Value, error) {
		if v.Kind() != KindRecord {
			return nil, fmt.Errorf("dynamic: rename field %s: %s is not a record", from, v.describe())
		}
		fields := append([]Field(nil), v.fields...)
		for i, f := range fields {
			if f.Name == from {
				fields[i] = FieldOf(to, f.Value)
				return Record(v.typeID, fields...), nil
			}
		}
		return nil, fmt.Errorf("dynamic: rename field: record %s has no field %s", v.typeID, from)
	})
}

// DeleteField removes a field from the record at path.
func DeleteField(path Path, name string) Migration {
	return UpdateAt(path, func(v *Value) (*Value, error) {
		if v.Kind() != KindRecord {
			return nil, fmt.Errorf("dynamic: delete field %s: %s is not a record", name, v.describe())
		}
		fields := make([]Field, 0, len(v.fields))
		found := false
		for _, f := range v.fields {
			if f.Name == name {
				found = true
				continue
			}
			fields = append(fields, f)
		}
		if !found {
			return nil, fmt.Errorf("dynamic: delete field: record %s has no field %s", v.typeID, name)
		}
		return Record(v.typeID, fields...), nil
	})
}

// RenameCase relabels the active case of the enum at path when it matches
// from; any other active case passes through unchanged.
func RenameCase(path Path, from, to string) Migration {
	return UpdateAt(path, func(v *Value) (*Value, error) {
		if v.Kind() != KindEnum {
			return nil, fmt.Errorf("dynamic: rename case %s: %s is not an enum", from, v.describe())
		}
		if v.caseName != from {
			return v, nil
		}
		return Enum(v.typeID, to, v.inner), nil
	})
}

func updateAt(v *Value, path Path, fn func(*Value) (*Value, error)) (*Value, error) {
	if len(path) == 0 {
		return fn(v)
	}

	switch v.Kind() {
	case KindSome:
		inner, err := updateAt(v.inner, path, fn)
		if err != nil {
			return nil, err
		}
		return Some(inner), nil

	case KindEnum:
		inner, err := updateAt(v.inner, path, fn)
		if err != nil {
			return nil, err
		}
		return Enum(v.typeID, v.caseName, inner), nil

	case KindRecord:
		name := path[0]
		fields := append([]Field(nil), v.fields...)
		for i, f := range fields {
			if f.Name == name {
				updated, err := updateAt(f.Value, path[1:], fn)
				if err != nil {
					return nil, err
				}
				fields[i] = FieldOf(name, updated)
				return Record(v.typeID, fields...), nil
			}
		}
		return nil, fmt.Errorf("dynamic: path step %s: record %s has no such field", name, v.typeID)

	default:
		return nil, fmt.Errorf("dynamic: path step %s: cannot descend into %s", path[0], v.describe())
	}
}
