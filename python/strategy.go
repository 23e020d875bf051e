package python

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/fwojciec/libcache"
)

var (
	_ libcache.ResolveStrategy = (*DirectStrategy)(nil)
	_ libcache.ResolveStrategy = (*MemberStrategy)(nil)
)

// DirectStrategy resolves a name as a module importable on its own.
type DirectStrategy struct {
	Loader ModuleLoader
}

// NewDirectStrategy returns a DirectStrategy using the given loader.
func NewDirectStrategy(loader ModuleLoader) *DirectStrategy {
	return &DirectStrategy{Loader: loader}
}

// Resolve imports name as a whole dotted path.
func (s *DirectStrategy) Resolve(ctx context.Context, name string) (*libcache.Unit, error) {
	mod, err := s.Loader.FindModule(ctx, name)
	if err != nil {
		return nil, err
	}
	return &libcache.Unit{
		Name:       name,
		Module:     mod.Name,
		SourcePath: mod.Source,
	}, nil
}

// MemberStrategy resolves a dotted name as a member defined in its parent
// module, e.g. a library class inside a module that is not named after it.
type MemberStrategy struct {
	Loader ModuleLoader
}

// NewMemberStrategy returns a MemberStrategy using the given loader.
func NewMemberStrategy(loader ModuleLoader) *MemberStrategy {
	return &MemberStrategy{Loader: loader}
}

// Resolve imports the parent of name and looks the last segment up on it.
// Undotted names and parents without the member are declined with a nil
// unit and nil error. A parent that cannot be imported is reported as an
// error. The unit's source is the parent module's source.
func (s *MemberStrategy) Resolve(ctx context.Context, name string) (*libcache.Unit, error) {
	parent, leaf := libcache.SplitName(name)
	if parent == "" {
		return nil, nil
	}

	mod, err := s.Loader.FindModule(ctx, parent)
	if err != nil {
		return nil, err
	}

	ok, err := s.Loader.HasMember(ctx, mod, leaf)
	if err != nil {
		return nil, err
	} else if !ok {
		return nil, nil
	}

	return &libcache.Unit{
		Name:       name,
		Module:     mod.Name,
		Member:     leaf,
		SourcePath: mod.Source,
	}, nil
}

var (
	fromImportRe = regexp.MustCompile(`^from\s+\S+\s+import\s+(.*)$`)
	importRe     = regexp.MustCompile(`^import\s+(.*)$`)
	scopeRe      = regexp.MustCompile(`^(class|(async\s+)?def)\b`)
)

// DefinesMember reports whether the Python source file binds member outside
// any class or function body. Bindings nested in try, if, with or loop
// blocks count, as does a star import.
func DefinesMember(path, member string) (bool, error) {
	if !isIdentifier(member) {
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	type block struct {
		indent int
		scoped bool
	}

	var (
		lex     lexer
		stmt    strings.Builder
		pending bool
		indent  int
		stack   []block
	)
	patterns := memberPatterns(member)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		raw := scanner.Text()
		if !pending {
			indent = indentOf(raw)
			pending = true
		}

		code := strings.TrimRight(lex.strip(raw), " \t")
		joined := strings.HasSuffix(code, `\`)
		stmt.WriteString(strings.TrimSuffix(code, `\`))
		stmt.WriteByte(' ')
		if joined || lex.depth > 0 || lex.triple != "" {
			continue
		}

		line := strings.TrimSpace(stmt.String())
		stmt.Reset()
		pending = false
		if line == "" {
			continue
		}

		for len(stack) > 0 && stack[len(stack)-1].indent >= indent {
			stack = stack[:len(stack)-1]
		}
		scoped := len(stack) > 0 && stack[len(stack)-1].scoped
		if !scoped && bindsMember(line, member, patterns) {
			return true, nil
		}
		if strings.HasSuffix(line, ":") {
			stack = append(stack, block{indent: indent, scoped: scoped || scopeRe.MatchString(line)})
		}
	}
	return false, scanner.Err()
}

// bindsMember reports whether a logical line of code binds member.
func bindsMember(line, member string, patterns []*regexp.Regexp) bool {
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		for _, re := range patterns {
			if re.MatchString(part) {
				return true
			}
		}
		if m := fromImportRe.FindStringSubmatch(part); m != nil {
			if importsName(m[1], member, true) {
				return true
			}
		} else if m := importRe.FindStringSubmatch(part); m != nil {
			if importsName(m[1], member, false) {
				return true
			}
		}
	}
	return false
}

// importsName reports whether an import list binds member. A plain import
// binds the first segment of each dotted name unless it is aliased.
func importsName(list, member string, from bool) bool {
	list = strings.Trim(strings.TrimSpace(list), "()")
	for _, item := range strings.Split(list, ",") {
		fields := strings.Fields(item)
		var bound string
		switch {
		case len(fields) == 0:
			continue
		case len(fields) == 3 && fields[1] == "as":
			bound = fields[2]
		case from:
			bound = fields[0]
		default:
			bound, _, _ = strings.Cut(fields[0], ".")
		}
		if bound == member || (from && bound == "*") {
			return true
		}
	}
	return false
}

func memberPatterns(member string) []*regexp.Regexp {
	m := regexp.QuoteMeta(member)
	return []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`^class\s+%s\b`, m)),
		regexp.MustCompile(fmt.Sprintf(`^(async\s+)?def\s+%s\s*\(`, m)),
		regexp.MustCompile(fmt.Sprintf(`^%s\s*(:[^=]*)?=[^=]`, m)),
	}
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}

// lexer strips string literals and comments from physical lines while
// tracking open brackets and triple-quoted strings across lines.
type lexer struct {
	triple string
	depth  int
}

// strip returns the code of line with each string literal replaced by "".
func (l *lexer) strip(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); {
		if l.triple != "" {
			switch {
			case strings.HasPrefix(line[i:], l.triple):
				l.triple = ""
				i += 3
			case line[i] == '\\':
				i += 2
			default:
				i++
			}
			continue
		}

		c := line[i]
		switch {
		case c == '#':
			return b.String()
		case strings.HasPrefix(line[i:], `"""`) || strings.HasPrefix(line[i:], `'''`):
			l.triple = line[i : i+3]
			b.WriteString(`""`)
			i += 3
		case c == '"' || c == '\'':
			j := i + 1
			for j < len(line) && line[j] != c {
				if line[j] == '\\' {
					j++
				}
				j++
			}
			b.WriteString(`""`)
			i = j + 1
		default:
			switch c {
			case '(', '[', '{':
				l.depth++
			case ')', ']', '}':
				if l.depth > 0 {
					l.depth--
				}
			}
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}
