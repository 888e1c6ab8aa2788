package shadertest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Faultbox/glworkshop/internal/engine/shader"
)

// decl is a global declaration found in a stage.
type decl struct {
	kind string // attribute, uniform, varying
	typ  string
	name string
	line int
}

// unit is a stage that passed the fake compiler.
type unit struct {
	stage shader.Stage
	decls []decl
	body  string // source with declarations removed, used for liveness
}

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	declPattern  = regexp.MustCompile(`^\s*(?:layout\s*\([^)]*\)\s*)?(?:(?:highp|mediump|lowp|flat|smooth|noperspective|centroid|invariant)\s+)*(attribute|uniform|varying|in|out)\s+(?:(?:highp|mediump|lowp)\s+)?(\w+)\s+(\w+)\s*(?:\[[^\]]*\])?\s*;`)
	mainPattern  = regexp.MustCompile(`\bvoid\s+main\s*\(`)
	emptyAssign  = regexp.MustCompile(`=\s*;`)
)

func stripComments(src string) string {
	src = blockComment.ReplaceAllStringFunc(src, func(s string) string {
		// keep line numbers stable
		return strings.Repeat("\n", strings.Count(s, "\n"))
	})
	return lineComment.ReplaceAllString(src, "")
}

// compile runs the miniature compiler. It returns the info log on failure.
func compile(stage shader.Stage, src string) (*unit, string) {
	clean := stripComments(src)
	lines := strings.Split(clean, "\n")

	var errs []string
	report := func(line int, token, msg string) {
		errs = append(errs, fmt.Sprintf("ERROR: 0:%d: '%s' : %s", line, token, msg))
	}

	depth := map[byte]int{}
	pairs := map[byte]byte{')': '(', '}': '{', ']': '['}
	u := &unit{stage: stage}
	var body strings.Builder

	for i, line := range lines {
		n := i + 1
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "#error") {
			report(n, "#error", strings.TrimSpace(strings.TrimPrefix(trimmed, "#error")))
			continue
		}
		if emptyAssign.MatchString(trimmed) {
			report(n, ";", "syntax error")
		}

		for j := 0; j < len(line); j++ {
			c := line[j]
			switch c {
			case '(', '{', '[':
				depth[c]++
			case ')', '}', ']':
				open := pairs[c]
				if depth[open] == 0 {
					report(n, string(c), "syntax error")
				} else {
					depth[open]--
				}
			}
		}

		if depth['{'] == 0 {
			if m := declPattern.FindStringSubmatch(line); m != nil {
				u.decls = append(u.decls, decl{kind: normalizeKind(stage, m[1]), typ: m[2], name: m[3], line: n})
				body.WriteString("\n")
				continue
			}
		}
		body.WriteString(line)
		body.WriteString("\n")
	}

	last := len(lines)
	for open, count := range depth {
		if count > 0 {
			report(last, string(open), "unexpected end of file")
		}
	}
	if !mainPattern.MatchString(clean) {
		report(0, "main", "missing entry point")
	}

	if len(errs) > 0 {
		return nil, strings.Join(errs, "\n") + "\n"
	}
	u.body = body.String()
	return u, ""
}

// normalizeKind maps ES 3.00 in/out qualifiers to their ES 1.00 names.
func normalizeKind(stage shader.Stage, kind string) string {
	switch kind {
	case "in":
		if stage == shader.Vertex {
			return "attribute"
		}
		return "varying"
	case "out":
		if stage == shader.Vertex {
			return "varying"
		}
		return "output"
	}
	return kind
}

func (u *unit) declared(kind string) []decl {
	var out []decl
	for _, d := range u.decls {
		if d.kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// uses reports whether name appears as an identifier outside its declaration.
func (u *unit) uses(name string) bool {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`).MatchString(u.body)
}

// linkage is the result of linking two units.
type linkage struct {
	attribs  map[string]int32
	uniforms map[string]shader.UniformLocation
}

// link checks the varying interface and assigns locations to active inputs.
func link(vert, frag *unit) (*linkage, string) {
	var errs []string

	vouts := map[string]decl{}
	for _, d := range vert.declared("varying") {
		vouts[d.name] = d
	}
	fins := map[string]decl{}
	for _, d := range frag.declared("varying") {
		fins[d.name] = d
		v, ok := vouts[d.name]
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("ERROR: Varying '%s' is not written by the vertex shader", d.name))
		case v.typ != d.typ:
			errs = append(errs, fmt.Sprintf("ERROR: Varying '%s' declared as %s in vertex shader and %s in fragment shader", d.name, v.typ, d.typ))
		}
	}
	for _, d := range vert.declared("varying") {
		if _, ok := fins[d.name]; !ok {
			errs = append(errs, fmt.Sprintf("ERROR: Varying '%s' is not declared by the fragment shader", d.name))
		}
	}

	vuni := map[string]decl{}
	for _, d := range vert.declared("uniform") {
		vuni[d.name] = d
	}
	for _, d := range frag.declared("uniform") {
		if v, ok := vuni[d.name]; ok && v.typ != d.typ {
			errs = append(errs, fmt.Sprintf("ERROR: Uniform '%s' declared as %s and %s", d.name, v.typ, d.typ))
		}
	}

	if len(errs) > 0 {
		return nil, strings.Join(errs, "\n") + "\n"
	}

	l := &linkage{
		attribs:  map[string]int32{},
		uniforms: map[string]shader.UniformLocation{},
	}
	for _, d := range vert.declared("attribute") {
		if vert.uses(d.name) {
			l.attribs[d.name] = int32(len(l.attribs))
		}
	}
	for _, u := range []*unit{vert, frag} {
		for _, d := range u.declared("uniform") {
			if _, seen := l.uniforms[d.name]; seen {
				continue
			}
			if u.uses(d.name) {
				l.uniforms[d.name] = shader.UniformLocation(len(l.uniforms))
			}
		}
	}
	return l, ""
}
