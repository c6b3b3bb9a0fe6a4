package crossmatch

import (
	"fmt"
	"regexp"
	"strings"
)

// pathTemplate is a path with %attribute% placeholders, such as
// "/data/%model%/%variable%_%period%.nc".
type pathTemplate struct {
	raw  string
	keys []string       // placeholder names in order of appearance, possibly repeated
	re   *regexp.Regexp // positional groups aligned with keys
}

var placeholderPattern = regexp.MustCompile(`%([A-Za-z0-9_]+)%`)

// parseTemplate compiles a path template. A template must contain at least
// one placeholder and no stray percent signs.
func parseTemplate(pattern string) (*pathTemplate, error) {
	locs := placeholderPattern.FindAllStringSubmatchIndex(pattern, -1)
	if len(locs) == 0 {
		return nil, fmt.Errorf("pattern %q has no attribute placeholders", pattern)
	}
	if strings.Count(pattern, "%") != 2*len(locs) {
		return nil, fmt.Errorf("pattern %q has an unbalanced placeholder", pattern)
	}

	// Group names are positional rather than named: the same attribute may
	// legally appear in several path segments.
	var b strings.Builder
	b.WriteString("^")
	keys := make([]string, 0, len(locs))
	last := 0
	for _, loc := range locs {
		b.WriteString(regexp.QuoteMeta(pattern[last:loc[0]]))
		b.WriteString(`([^/]+)`)
		keys = append(keys, pattern[loc[2]:loc[3]])
		last = loc[1]
	}
	b.WriteString(regexp.QuoteMeta(pattern[last:]))
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}

	return &pathTemplate{raw: pattern, keys: keys, re: re}, nil
}

// uniqueKeys returns the distinct placeholder names in order of appearance.
func (t *pathTemplate) uniqueKeys() []string {
	seen := make(map[string]struct{}, len(t.keys))
	var out []string
	for _, k := range t.keys {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

// extract parses a concrete path against the template and returns the
// attribute values it encodes. Returns false when the path does not match or
// a repeated placeholder captures two different values.
func (t *pathTemplate) extract(path string) (Attributes, bool) {
	match := t.re.FindStringSubmatch(path)
	if match == nil {
		return nil, false
	}

	attrs := make(Attributes, len(t.keys))
	for i, key := range t.keys {
		v := match[i+1]
		if prev, ok := attrs[key]; ok && prev != v {
			return nil, false
		}
		attrs[key] = v
	}
	return attrs, true
}

// substitute renders the template with the given values. Returns false when
// a placeholder has no value.
func (t *pathTemplate) substitute(attrs Attributes) (string, bool) {
	missing := false
	out := placeholderPattern.ReplaceAllStringFunc(t.raw, func(ph string) string {
		v, ok := attrs[ph[1:len(ph)-1]]
		if !ok {
			missing = true
			return ph
		}
		return v
	})
	if missing {
		return "", false
	}
	return out, true
}

// walkRoot returns the literal directory prefix of the template, where a
// filesystem scan starts.
func (t *pathTemplate) walkRoot() string {
	i := strings.IndexByte(t.raw, '%')
	j := strings.LastIndexByte(t.raw[:i], '/')
	switch {
	case j < 0:
		return "."
	case j == 0:
		return "/"
	default:
		return t.raw[:j]
	}
}
