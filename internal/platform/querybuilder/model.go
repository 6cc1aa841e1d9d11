package querybuilder

import (
	"reflect"
	"strings"

	crerr "github.com/cockroachdb/errors"
)

// InsertModel inserts one struct. Columns come from `db` tags; embedded
// structs contribute their own tagged fields.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	cols, vals, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", nil, err
	}
	return InsertInto(table).
		Columns(cols...).
		Values(vals...).
		Suffix(suffix).
		ToSQL()
}

// InsertModels renders one multi-row insert. Every model must have the same type.
func InsertModels[T any](table string, models []T, suffix string) (string, []any, error) {
	if len(models) == 0 {
		return "", nil, invalid("insert into %s without models", table)
	}
	b := InsertInto(table).Suffix(suffix)
	for i, model := range models {
		cols, vals, err := columnsAndValuesFromModel(model)
		if err != nil {
			return "", nil, crerr.Wrapf(err, "model %d", i)
		}
		if i == 0 {
			b.Columns(cols...)
		}
		b.Values(vals...)
	}
	return b.ToSQL()
}

func columnsAndValuesFromModel(model any) ([]string, []any, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return nil, nil, invalid("nil model")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return nil, nil, invalid("model is %s, not a struct", value.Kind())
	}

	var cols []string
	var vals []any
	collectColumns(value, &cols, &vals)
	if len(cols) == 0 {
		return nil, nil, invalid("%s has no db columns", value.Type())
	}
	return cols, vals, nil
}

func collectColumns(value reflect.Value, cols *[]string, vals *[]any) {
	typ := value.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := strings.TrimSpace(field.Tag.Get("db"))
		if field.Anonymous && tag == "" && field.Type.Kind() == reflect.Struct {
			collectColumns(value.Field(i), cols, vals)
			continue
		}
		if !field.IsExported() {
			continue
		}
		col := strings.TrimSpace(strings.Split(tag, ",")[0])
		if col == "" || col == "-" {
			continue
		}
		*cols = append(*cols, col)
		*vals = append(*vals, value.Field(i).Interface())
	}
}

// OnConflictUpdate renders an upsert suffix that overwrites every tagged
// column of model except the conflict target. extra assignments such as
// "exported_at = NOW()" are appended verbatim.
func OnConflictUpdate(model any, target []string, extra ...string) (string, error) {
	cols, _, err := columnsAndValuesFromModel(model)
	if err != nil {
		return "", err
	}
	skip := make(map[string]struct{}, len(target))
	for _, col := range target {
		skip[col] = struct{}{}
	}

	sets := make([]string, 0, len(cols)+len(extra))
	for _, col := range cols {
		if _, ok := skip[col]; ok {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	sets = append(sets, extra...)
	if len(target) == 0 || len(sets) == 0 {
		return "", invalid("on conflict needs a target and at least one assignment")
	}
	return "ON CONFLICT (" + strings.Join(target, ", ") + ") DO UPDATE SET " + strings.Join(sets, ", "), nil
}

// MustOnConflictUpdate is OnConflictUpdate for package-level clauses built
// from static models.
func MustOnConflictUpdate(model any, target []string, extra ...string) string {
	clause, err := OnConflictUpdate(model, target, extra...)
	if err != nil {
		panic(err)
	}
	return clause
}
