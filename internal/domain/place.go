package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Place - именованное место из входного файла
type Place struct {
	Name  string     `json:"name" validate:"required"`
	Query PlaceQuery `json:"query"`
}

// PlaceQuery - запрос к геокодеру: либо свободный текст, либо структурированные параметры
// (state, country, city ...). Только для чтения.
type PlaceQuery struct {
	Text   string            `json:"-" validate:"required_without=Params"`
	Params map[string]string `json:"-" validate:"required_without=Text"`
}

// IsStructured сообщает, задан ли запрос структурированными параметрами
func (q PlaceQuery) IsStructured() bool {
	return q.Text == "" && len(q.Params) > 0
}

// String возвращает стабильное текстовое представление запроса (для логов и ключей кеша)
func (q PlaceQuery) String() string {
	if !q.IsStructured() {
		return q.Text
	}

	keys := make([]string, 0, len(q.Params))
	for k := range q.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+q.Params[k])
	}
	return strings.Join(parts, "&")
}

// UnmarshalJSON принимает строку или объект параметров
func (q *PlaceQuery) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return fmt.Errorf("place query cannot be null")
	}

	if data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("invalid place query string: %w", err)
		}
		q.Text = text
		q.Params = nil
		return nil
	}

	// числа сохраняются как в файле: 1234567, а не 1.234567e+06
	var raw map[string]interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("place query must be a string or an object: %w", err)
	}

	params := make(map[string]string, len(raw))
	for k, v := range raw {
		switch val := v.(type) {
		case string:
			params[k] = val
		case json.Number:
			params[k] = val.String()
		case nil:
			continue
		default:
			params[k] = fmt.Sprint(val)
		}
	}
	q.Text = ""
	q.Params = params
	if len(params) == 0 {
		q.Params = nil
	}
	return nil
}

// MarshalJSON - обратное преобразование (строка или объект)
func (q PlaceQuery) MarshalJSON() ([]byte, error) {
	if q.IsStructured() {
		return json.Marshal(q.Params)
	}
	return json.Marshal(q.Text)
}
