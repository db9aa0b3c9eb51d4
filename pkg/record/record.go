// Package record models the records returned by the tracker API. Records
// have no fixed schema; their fields are discovered from the payload and kept
// in the order a browser would enumerate them.
package record

import (
	"sort"
	"strconv"

	"github.com/octofit/octofit-web/pkg/errs"
	"github.com/tidwall/gjson"
)

// Fields is anything with enumerable string-keyed values.
type Fields interface {
	Keys() []string
	Lookup(key string) (gjson.Result, bool)
}

var _ Fields = Record{}

type Field struct {
	Key   string
	Value gjson.Result
}

// Record is an ordered mapping from field name to raw JSON value.
type Record struct {
	fields []Field
	index  map[string]int
}

// Collection is an ordered sequence of records.
type Collection []Record

func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Key
	}

	return keys
}

func (r Record) Lookup(key string) (gjson.Result, bool) {
	i, ok := r.index[key]
	if !ok {
		return gjson.Result{}, false
	}

	return r.fields[i].Value, true
}

func (r Record) Fields() []Field {
	return r.fields
}

func (r Record) Len() int {
	return len(r.fields)
}

// FromJSON parses a single JSON object into a record.
func FromJSON(raw string) (Record, error) {
	const op errs.Op = "record.FromJSON"

	if !gjson.Valid(raw) {
		return Record{}, errs.E(op, errs.IO, "invalid JSON")
	}

	v := gjson.Parse(raw)
	if !v.IsObject() {
		return Record{}, errs.E(op, errs.IO, "record is not a JSON object")
	}

	return fromObject(v), nil
}

// fromObject builds a record from an object value. A repeated key keeps the
// position of its first occurrence and the value of its last.
func fromObject(v gjson.Result) Record {
	r := Record{
		index: map[string]int{},
	}

	v.ForEach(func(k, val gjson.Result) bool {
		key := k.String()

		if i, ok := r.index[key]; ok {
			r.fields[i].Value = val
			return true
		}

		r.index[key] = len(r.fields)
		r.fields = append(r.fields, Field{Key: key, Value: val})

		return true
	})

	sort.SliceStable(r.fields, func(i, j int) bool {
		ni, iok := arrayIndex(r.fields[i].Key)
		nj, jok := arrayIndex(r.fields[j].Key)

		switch {
		case iok && jok:
			return ni < nj
		case iok:
			return true
		default:
			return false
		}
	})

	for i, f := range r.fields {
		r.index[f.Key] = i
	}

	return r
}

// arrayIndex reports whether key is an integer index in canonical form,
// which JavaScript enumerates ahead of all other keys.
func arrayIndex(key string) (uint32, bool) {
	if key == "" || (len(key) > 1 && key[0] == '0') {
		return 0, false
	}

	for _, c := range key {
		if c < '0' || c > '9' {
			return 0, false
		}
	}

	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}

	return uint32(n), true
}
