package command

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyLine is returned by ParseLine for blank input.
var ErrEmptyLine = errors.New("empty command")

// ParseLine splits `name key=value ...` into a command name and arguments.
// Values are YAML scalars or flow collections, so `price=1500000`,
// `enabled=true`, `date=null`, `headline="Two words"` and `features=[Pool, Gym]`
// all decode to their natural types. Quoted or bracketed values may contain
// spaces.
func ParseLine(line string) (string, map[string]any, error) {
	tokens, err := tokenize(line)
	if err != nil {
		return "", nil, err
	}
	if len(tokens) == 0 {
		return "", nil, ErrEmptyLine
	}
	name := tokens[0]
	if strings.Contains(name, "=") {
		return "", nil, fmt.Errorf("expected a command name before %q", name)
	}
	raw := make(map[string]any, len(tokens)-1)
	for _, tok := range tokens[1:] {
		key, value, ok := strings.Cut(tok, "=")
		if !ok || key == "" {
			return "", nil, fmt.Errorf("argument %q: expected key=value", tok)
		}
		if _, dup := raw[key]; dup {
			return "", nil, fmt.Errorf("argument %q given twice", key)
		}
		v, err := decodeValue(value)
		if err != nil {
			return "", nil, fmt.Errorf("argument %q: %w", key, err)
		}
		raw[key] = v
	}
	return name, raw, nil
}

func decodeValue(s string) (any, error) {
	if s == "" {
		return "", nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(s), &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	if node.Content[0].ShortTag() == "!!timestamp" {
		return node.Content[0].Value, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	if _, isMap := v.(map[string]any); isMap {
		return nil, errors.New("nested objects are not supported")
	}
	return v, nil
}

// tokenize splits on whitespace outside quotes and brackets. Quotes are kept
// so YAML sees them.
func tokenize(line string) ([]string, error) {
	var (
		tokens []string
		cur    strings.Builder
		quote  rune
		depth  int
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == '[' || r == '{':
			depth++
			cur.WriteRune(r)
		case (r == ']' || r == '}') && depth > 0:
			depth--
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && depth == 0:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if depth != 0 {
		return nil, errors.New("unbalanced brackets")
	}
	flush()
	return tokens, nil
}
