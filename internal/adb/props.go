package adb

import (
	"strconv"
	"strings"
)

// Property keys queried for every device.
const (
	PropManufacturer = "ro.product.manufacturer"
	PropMarketName   = "ro.product.marketname"
	PropDevice       = "ro.product.device"
	PropSDK          = "ro.build.version.sdk"
)

// PropertyKeys lists the properties fetched by Client.Properties, in order.
var PropertyKeys = []string{
	PropManufacturer,
	PropMarketName,
	PropDevice,
	PropSDK,
}

// Value is a parsed getprop value. The raw text is split on commas and each
// token is coerced to a bool ("true"/"false"), an int (ASCII digits only) or
// left as a string. A value with one token is a scalar; a value with several
// is a list. Flag lists such as "1,0,1" keep their ints; read them with
// Bools.
type Value struct {
	raw   string
	items []any
}

// ParseValue trims raw, splits it on commas and coerces each token.
func ParseValue(raw string) Value {
	raw = strings.TrimSpace(raw)
	tokens := strings.Split(raw, ",")
	items := make([]any, len(tokens))
	for i, tok := range tokens {
		items[i] = coerce(tok)
	}
	return Value{raw: raw, items: items}
}

func coerce(tok string) any {
	switch tok {
	case "true":
		return true
	case "false":
		return false
	}
	if isDigits(tok) {
		if n, err := strconv.Atoi(tok); err == nil {
			return n
		}
	}
	return tok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// IsList reports whether the value held more than one comma-separated token.
func (v Value) IsList() bool {
	return len(v.items) > 1
}

// Get returns the scalar (string, bool or int) for single-token values and
// a []any for lists.
func (v Value) Get() any {
	if v.IsList() {
		return v.List()
	}
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

// List returns a copy of the coerced tokens. Scalars yield a one-element slice.
func (v Value) List() []any {
	out := make([]any, len(v.items))
	copy(out, v.items)
	return out
}

// Int returns the scalar as an int.
func (v Value) Int() (int, bool) {
	if v.IsList() || len(v.items) == 0 {
		return 0, false
	}
	n, ok := v.items[0].(int)
	return n, ok
}

// Bools returns every token as a boolean. Besides true and false, the
// integers 0 and 1 are accepted, so "1,0,1" reads as [true false true].
func (v Value) Bools() ([]bool, bool) {
	out := make([]bool, 0, len(v.items))
	for _, it := range v.items {
		switch x := it.(type) {
		case bool:
			out = append(out, x)
		case int:
			if x != 0 && x != 1 {
				return nil, false
			}
			out = append(out, x == 1)
		default:
			return nil, false
		}
	}
	return out, true
}

// Raw returns the trimmed text adb printed.
func (v Value) Raw() string {
	return v.raw
}

func (v Value) String() string {
	return v.raw
}

// Properties maps property keys to their parsed values.
type Properties map[string]Value

// Clone returns a copy that shares no state with p.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for k, v := range p {
		out[k] = Value{raw: v.raw, items: v.List()}
	}
	return out
}

// Properties reads PropertyKeys from the device, one getprop call per key.
// Any failed call aborts the query.
func (c *Client) Properties(serial string) (Properties, error) {
	c.log.Info().Str("serial", serial).Msg("reading device properties")
	props := make(Properties, len(PropertyKeys))
	for _, key := range PropertyKeys {
		out, err := c.run("-s", serial, "shell", "getprop", key)
		if err != nil {
			c.log.Error().Err(err).Str("serial", serial).Str("key", key).Msg("getprop failed")
			return nil, err
		}
		props[key] = ParseValue(out)
	}
	c.log.Info().Str("serial", serial).Msg("device properties read")
	return props, nil
}
