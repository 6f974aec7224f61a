package wire

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"roster/pkg/domain"
	dErrors "roster/pkg/domain-errors"
)

// reader reads the fields of one wire object. Every error it returns is
// coded and attributed to the field that caused it.
type reader struct {
	obj gjson.Result
}

func newReader(data []byte) (reader, error) {
	if !gjson.ValidBytes(data) {
		return reader{}, dErrors.New(dErrors.CodeInvalidInput, "record is not valid JSON")
	}
	obj := gjson.ParseBytes(data)
	if !obj.IsObject() {
		return reader{}, dErrors.New(dErrors.CodeInvalidInput, "record is not a JSON object")
	}
	return reader{obj: obj}, nil
}

// marshalValue renders already-structured field data as wire JSON.
func marshalValue(fields map[string]any) ([]byte, error) {
	if fields == nil {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "record is empty")
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "record is not representable as JSON")
	}
	return data, nil
}

// lookup returns the field value; JSON null counts as absent.
func (r reader) lookup(name string) (gjson.Result, bool) {
	res := r.obj.Get(gjson.Escape(name))
	if !res.Exists() || res.Type == gjson.Null {
		return gjson.Result{}, false
	}
	return res, true
}

func missing(name string) error {
	return &dErrors.Error{
		Code:    dErrors.CodeMissingRequiredField,
		Message: "required field is absent",
		Field:   name,
	}
}

func wrongType(field, want string, res gjson.Result) error {
	return &dErrors.Error{
		Code:    dErrors.CodeInvalidInput,
		Message: fmt.Sprintf("expected %s, got %s", want, describe(res)),
		Field:   field,
	}
}

func describe(res gjson.Result) string {
	switch {
	case res.IsObject():
		return "object"
	case res.IsArray():
		return "array"
	case res.IsBool():
		return "boolean"
	case res.Type == gjson.Number:
		return "number"
	case res.Type == gjson.String:
		return "string"
	}
	return "null"
}

func asString(field string, res gjson.Result) (string, error) {
	if res.Type != gjson.String {
		return "", wrongType(field, "string", res)
	}
	return res.Str, nil
}

// requiredString returns a string field that must be present.
func (r reader) requiredString(name string) (string, error) {
	res, ok := r.lookup(name)
	if !ok {
		return "", missing(name)
	}
	return asString(name, res)
}

// optionalString returns nil when the field is absent.
func (r reader) optionalString(name string) (*string, error) {
	res, ok := r.lookup(name)
	if !ok {
		return nil, nil
	}
	s, err := asString(name, res)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// stringOrEmpty returns "" when the field is absent.
func (r reader) stringOrEmpty(name string) (string, error) {
	s, err := r.optionalString(name)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

// required decodes a present string field with parse.
func required[T any](r reader, name string, parse func(string) (T, error)) (T, error) {
	var zero T
	s, err := r.requiredString(name)
	if err != nil {
		return zero, err
	}
	v, err := parse(s)
	if err != nil {
		return zero, dErrors.WithField(err, name)
	}
	return v, nil
}

// optional decodes a string field with parse, returning nil when absent.
func optional[T any](r reader, name string, parse func(string) (T, error)) (*T, error) {
	s, err := r.optionalString(name)
	if err != nil || s == nil {
		return nil, err
	}
	v, err := parse(*s)
	if err != nil {
		return nil, dErrors.WithField(err, name)
	}
	return &v, nil
}

// list decodes an array field element by element. An absent field yields an
// empty, non-nil slice unless mustExist is set.
func list[T any](r reader, name string, mustExist bool, elem func(field string, res gjson.Result) (T, error)) ([]T, error) {
	res, ok := r.lookup(name)
	if !ok {
		if mustExist {
			return nil, missing(name)
		}
		return []T{}, nil
	}
	if !res.IsArray() {
		return nil, wrongType(name, "array", res)
	}
	items := res.Array()
	out := make([]T, 0, len(items))
	for i, item := range items {
		field := fmt.Sprintf("%s[%d]", name, i)
		v, err := elem(field, item)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// parsed adapts a string parser into a list element decoder.
func parsed[T any](parse func(string) (T, error)) func(string, gjson.Result) (T, error) {
	return func(field string, res gjson.Result) (T, error) {
		var zero T
		s, err := asString(field, res)
		if err != nil {
			return zero, err
		}
		v, err := parse(s)
		if err != nil {
			return zero, dErrors.WithField(err, field)
		}
		return v, nil
	}
}

func plainString(s string) (string, error) {
	return s, nil
}

func uint16Elem(field string, res gjson.Result) (uint16, error) {
	return asUint16(field, res, false)
}

// asUint16 accepts a JSON integer, or a decimal string when lenient is set.
func asUint16(field string, res gjson.Result, lenient bool) (uint16, error) {
	var text string
	switch {
	case res.Type == gjson.Number:
		text = res.Raw
	case lenient && res.Type == gjson.String:
		text = res.Str
	default:
		return 0, wrongType(field, "integer", res)
	}
	v, err := strconv.ParseUint(text, 10, 16)
	if err != nil {
		return 0, &dErrors.Error{
			Code:    dErrors.CodeInvalidInput,
			Message: fmt.Sprintf("%s is not an integer between 0 and 65535", text),
			Field:   field,
			Err:     err,
		}
	}
	return uint16(v), nil
}

// flag reads a boolean that defaults to false. The strings "true" and
// "false" are accepted as well.
func (r reader) flag(name string) (bool, error) {
	res, ok := r.lookup(name)
	if !ok {
		return false, nil
	}
	switch {
	case res.IsBool():
		return res.Bool(), nil
	case res.Type == gjson.String && (res.Str == "true" || res.Str == "false"):
		return res.Str == "true", nil
	}
	return false, wrongType(name, "boolean", res)
}

// metadata reads a string-to-string object; absent yields an empty map.
func (r reader) metadata(name string) (map[string]string, error) {
	res, ok := r.lookup(name)
	if !ok {
		return map[string]string{}, nil
	}
	if !res.IsObject() {
		return nil, wrongType(name, "object", res)
	}
	out := make(map[string]string)
	var err error
	res.ForEach(func(key, value gjson.Result) bool {
		var s string
		s, err = asString(name+"."+key.String(), value)
		if err != nil {
			return false
		}
		out[key.String()] = s
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// refElem decodes one wire reference object.
func refElem(field string, res gjson.Result) (domain.IDRef, error) {
	if !res.IsObject() {
		return domain.IDRef{}, wrongType(field, "reference object", res)
	}
	sub := reader{obj: res}
	ref, err := sub.ref()
	if err != nil {
		return domain.IDRef{}, dErrors.WithField(err, field)
	}
	return ref, nil
}

func (r reader) ref() (domain.IDRef, error) {
	href, err := r.stringOrEmpty("href")
	if err != nil {
		return domain.IDRef{}, err
	}
	id, err := required(r, "sourcedId", domain.ParseAnyID)
	if err != nil {
		return domain.IDRef{}, err
	}
	kind, err := r.stringOrEmpty("type")
	if err != nil {
		return domain.IDRef{}, err
	}
	return domain.IDRef{Href: href, ID: id, Type: kind}, nil
}

// optionalRef returns nil when the field is absent.
func (r reader) optionalRef(name string) (*domain.IDRef, error) {
	res, ok := r.lookup(name)
	if !ok {
		return nil, nil
	}
	ref, err := refElem(name, res)
	if err != nil {
		return nil, err
	}
	return &ref, nil
}
