package request

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/niklvrr/teammembers/internal/domain"
)

// TeamMemberRequest тело запроса на создание и обновление.
// Указатели отличают отсутствующее поле от нулевого значения
type TeamMemberRequest struct {
	Id    *int64  `json:"id" validate:"required"`
	Name  *string `json:"name" validate:"required"`
	Role  *string `json:"role" validate:"required"`
	Photo *string `json:"photo"`
}

func (r *TeamMemberRequest) toDomain() *domain.TeamMember {
	return &domain.TeamMember{
		Id:    *r.Id,
		Name:  *r.Name,
		Role:  *r.Role,
		Photo: r.Photo,
	}
}

type fieldRule struct {
	name     string
	target   any
	required bool
	msg      string
	typ      string
	// decode заменяет json.Unmarshal для полей с нестрогим разбором
	decode   func(raw json.RawMessage) *FieldError
}

// ParseTeamMember разбирает тело запроса в TeamMember.
// Проверяется только структура: наличие и типы полей
func ParseTeamMember(body io.Reader) (*domain.TeamMember, error) {
	verr := &ValidationError{}

	raw, err := io.ReadAll(body)
	if err != nil {
		verr.add([]string{"body"}, msgJSON, "json_invalid")
		return nil, verr
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		verr.add([]string{"body"}, msgJSON, "json_invalid")
		return nil, verr
	}

	var fields map[string]json.RawMessage
	if trimmed[0] != '{' || json.Unmarshal(trimmed, &fields) != nil {
		verr.add([]string{"body"}, msgObject, "model_attributes_type")
		return nil, verr
	}

	req := &TeamMemberRequest{}
	rules := []fieldRule{
		{name: "id", required: true, msg: msgInt, typ: "int_type", decode: laxInt(&req.Id)},
		{name: "name", target: &req.Name, required: true, msg: msgString, typ: "string_type"},
		{name: "role", target: &req.Role, required: true, msg: msgString, typ: "string_type"},
		{name: "photo", target: &req.Photo, msg: msgString, typ: "string_type"},
	}

	// Разбираем каждое поле отдельно, чтобы собрать все ошибки сразу
	for _, rule := range rules {
		value, ok := fields[rule.name]
		if !ok {
			continue
		}
		if string(bytes.TrimSpace(value)) == "null" {
			if rule.required {
				verr.add([]string{"body", rule.name}, rule.msg, rule.typ)
			}
			continue
		}
		if rule.decode != nil {
			if ferr := rule.decode(value); ferr != nil {
				verr.add([]string{"body", rule.name}, ferr.Msg, ferr.Type)
			}
			continue
		}
		if err := json.Unmarshal(value, rule.target); err != nil {
			verr.add([]string{"body", rule.name}, rule.msg, rule.typ)
		}
	}

	collectStructErrors(req, verr, "body")

	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return req.toDomain(), nil
}

// laxInt принимает целое число, число с нулевой дробной частью
// и строку с целым числом
func laxInt(target **int64) func(raw json.RawMessage) *FieldError {
	return func(raw json.RawMessage) *FieldError {
		if raw[0] == '"' {
			var s string
			if err := json.Unmarshal(raw, &s); err != nil {
				return &FieldError{Msg: msgInt, Type: "int_type"}
			}
			v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
			if err != nil {
				return &FieldError{Msg: msgIntParsing, Type: "int_parsing"}
			}
			*target = &v
			return nil
		}

		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return &FieldError{Msg: msgInt, Type: "int_type"}
		}
		if v, err := n.Int64(); err == nil {
			*target = &v
			return nil
		}

		f, err := n.Float64()
		if err != nil || f < math.MinInt64 || f >= math.MaxInt64 {
			return &FieldError{Msg: msgInt, Type: "int_type"}
		}
		if f != math.Trunc(f) {
			return &FieldError{Msg: msgIntFromFloat, Type: "int_from_float"}
		}
		v := int64(f)
		*target = &v
		return nil
	}
}

// ParseItemId разбирает целочисленный параметр пути item_id
func ParseItemId(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		verr := &ValidationError{}
		verr.add([]string{"path", "item_id"}, msgIntParsing, "int_parsing")
		return 0, verr
	}
	return id, nil
}
