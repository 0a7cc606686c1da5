// Package csm implements the cube script model text format: named octree
// definitions with octant-letter paths, nested child groups, and mirror
// and swap pipeline operations.
//
//	# a subdivided root with one refined octant
//	>a [1 2 3 4 5 6 7 8]
//	>aa [10 11 12 13 14 15 16 17]
//	| >b /x <a
//
// A line ">Pabc [..]" assigns the bracket group at octant path "abc"
// inside model P; letters a..h name octants 0..7. "| >dst /xyz <src"
// defines dst as the mirror of src over the listed axes; "^xyz" applies
// the one-level swap instead. The result of parsing is the last model
// defined.
package csm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/k0sti/crossworld/internal/core/cube"
)

// Parse reads a CSM document and returns the last model it defines.
func Parse(src string) (*cube.Cube, error) {
	models := map[byte]*cube.Cube{}
	var last byte
	haveLast := false

	for lineNo, raw := range strings.Split(src, "\n") {
		line := raw
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var err error
		if strings.HasPrefix(line, "|") {
			last, err = parseOp(strings.TrimSpace(line[1:]), models)
		} else if strings.HasPrefix(line, ">") {
			last, err = parseAssign(line, models)
		} else {
			err = fmt.Errorf("expected '>' or '|'")
		}
		if err != nil {
			return nil, fmt.Errorf("csm: line %d: %w", lineNo+1, err)
		}
		haveLast = true
	}

	if !haveLast {
		return nil, fmt.Errorf("csm: no model defined")
	}
	return models[last], nil
}

// parseAssign handles ">Ppath [children]"
func parseAssign(line string, models map[byte]*cube.Cube) (byte, error) {
	rest := strings.TrimSpace(line[1:])
	sp := strings.IndexAny(rest, " \t")
	if sp < 0 {
		return 0, fmt.Errorf("missing child group")
	}
	name := rest[:sp]
	if len(name) == 0 {
		return 0, fmt.Errorf("missing model name")
	}
	model := name[0]
	var path []int
	for i := 1; i < len(name); i++ {
		idx, ok := cube.OctantCharToIndex(name[i])
		if !ok {
			return 0, fmt.Errorf("bad octant letter %q", name[i])
		}
		path = append(path, idx)
	}

	tokens := tokenize(rest[sp:])
	node, remain, err := parseValue(tokens)
	if err != nil {
		return 0, err
	}
	if len(remain) != 0 {
		return 0, fmt.Errorf("trailing input %q", strings.Join(remain, " "))
	}

	root, ok := models[model]
	if !ok {
		root = cube.Solid(0)
	}
	models[model] = updateAtPath(root, path, node)
	return model, nil
}

// parseOp handles ">dst /xyz <src" and ">dst ^xyz <src"
func parseOp(line string, models map[byte]*cube.Cube) (byte, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return 0, fmt.Errorf("expected '>dst /axes <src'")
	}
	if len(fields[0]) != 2 || fields[0][0] != '>' {
		return 0, fmt.Errorf("bad destination %q", fields[0])
	}
	dst := fields[0][1]

	op := fields[1]
	if len(op) < 2 || (op[0] != '/' && op[0] != '^') {
		return 0, fmt.Errorf("bad operation %q", op)
	}
	var axes []cube.Axis
	for _, ch := range op[1:] {
		axis, ok := cube.AxisFromName(string(ch))
		if !ok {
			return 0, fmt.Errorf("bad axis %q", ch)
		}
		axes = append(axes, axis)
	}

	if len(fields[2]) != 2 || fields[2][0] != '<' {
		return 0, fmt.Errorf("bad source %q", fields[2])
	}
	src, ok := models[fields[2][1]]
	if !ok {
		return 0, fmt.Errorf("unknown source model %q", fields[2][1])
	}

	if op[0] == '/' {
		models[dst] = src.ApplyMirror(axes)
	} else {
		models[dst] = src.ApplySwap(axes)
	}
	return dst, nil
}

func tokenize(s string) []string {
	s = strings.ReplaceAll(s, "[", " [ ")
	s = strings.ReplaceAll(s, "]", " ] ")
	return strings.Fields(s)
}

// parseValue parses either a bare material integer or a bracket group
func parseValue(tokens []string) (*cube.Cube, []string, error) {
	if len(tokens) == 0 {
		return nil, nil, fmt.Errorf("missing value")
	}
	if tokens[0] == "[" {
		return parseGroup(tokens)
	}
	v, err := strconv.ParseUint(tokens[0], 10, 8)
	if err != nil {
		return nil, nil, fmt.Errorf("bad material %q", tokens[0])
	}
	return cube.Solid(uint8(v)), tokens[1:], nil
}

// parseGroup parses "[v0 .. v7]" where each value is a material integer
// or a nested group
func parseGroup(tokens []string) (*cube.Cube, []string, error) {
	if len(tokens) == 0 || tokens[0] != "[" {
		return nil, nil, fmt.Errorf("expected '['")
	}
	tokens = tokens[1:]

	var children [8]*cube.Cube
	for i := 0; i < 8; i++ {
		if len(tokens) == 0 {
			return nil, nil, fmt.Errorf("unterminated group")
		}
		if tokens[0] == "[" {
			node, rest, err := parseGroup(tokens)
			if err != nil {
				return nil, nil, err
			}
			children[i] = node
			tokens = rest
			continue
		}
		v, err := strconv.ParseUint(tokens[0], 10, 8)
		if err != nil {
			return nil, nil, fmt.Errorf("bad material %q", tokens[0])
		}
		children[i] = cube.Solid(uint8(v))
		tokens = tokens[1:]
	}

	if len(tokens) == 0 || tokens[0] != "]" {
		return nil, nil, fmt.Errorf("expected ']'")
	}
	return cube.NewCubes(children), tokens[1:], nil
}

// updateAtPath replaces the subtree at an octant-index path
func updateAtPath(c *cube.Cube, path []int, sub *cube.Cube) *cube.Cube {
	if len(path) == 0 {
		return sub
	}
	child := c.ChildOrSelf(path[0])
	return c.UpdatedIndex(path[0], updateAtPath(child, path[1:], sub))
}

// Format renders a cube as a single-model CSM document with nested
// groups. Planes and Slices render as their representative material.
func Format(c *cube.Cube) string {
	var b strings.Builder
	b.WriteString(">a ")
	writeNode(&b, c)
	b.WriteString("\n")
	return b.String()
}

func writeNode(b *strings.Builder, c *cube.Cube) {
	if c.IsLeaf() {
		b.WriteString(strconv.Itoa(int(c.ID())))
		return
	}
	b.WriteString("[")
	for i := 0; i < 8; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		writeNode(b, c.Child(i))
	}
	b.WriteString("]")
}
