package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Text decodes a JSON string, number or boolean into its string form.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		*t = Text(v)
	case float64:
		*t = Text(strconv.FormatFloat(v, 'f', -1, 64))
	case bool:
		*t = Text(strconv.FormatBool(v))
	default:
		return fmt.Errorf("cannot use %s as a string", bytes.TrimSpace(data))
	}
	return nil
}

func (t *Text) StringPtr() *string {
	if t == nil {
		return nil
	}
	s := string(*t)
	return &s
}

// Integer decodes a JSON integer, a numeric string or a boolean (0 or 1).
type Integer int

func (n *Integer) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("cannot use %q as a number", v)
		}
		f = parsed
	case bool:
		if v {
			f = 1
		}
	default:
		return fmt.Errorf("cannot use %s as a number", bytes.TrimSpace(data))
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return fmt.Errorf("cannot use %s as an integer", bytes.TrimSpace(data))
	}
	*n = Integer(f)
	return nil
}

func (n *Integer) IntPtr() *int {
	if n == nil {
		return nil
	}
	i := int(*n)
	return &i
}
