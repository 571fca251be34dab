// Package codegen lowers a *grammar.Grammar into the source of a standalone
// Go parser package that links against rt. It is the Go counterpart of
// original_source/pegomancy/generate.py's ParserGenerator, reshaped around
// Go's lack of exceptions: where generate.py emits one Python method per
// rule with one try/except block per alternative, codegen emits one Go
// method per rule PLUS one Go method per alternative, since an alternative
// that fails needs to report that failure to its caller by an ordinary
// return rather than by unwinding a try block.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	"github.com/doom/pegomancy/grammar"
)

// Options configures the generated parser's package clause, type name and
// receiver variable name.
type Options struct {
	PackageName  string
	ClassName    string
	ReceiverName string
}

func (o Options) withDefaults() Options {
	if o.PackageName == "" {
		o.PackageName = "main"
	}
	if o.ClassName == "" {
		o.ClassName = "Parser"
	}
	if o.ReceiverName == "" {
		o.ReceiverName = "p"
	}
	return o
}

var fileTemplate = template.Must(template.New("file").Parse(`// Code generated by pegomancy. DO NOT EDIT.

package {{.PackageName}}

import (
	"github.com/doom/pegomancy/rt"
	"github.com/doom/pegomancy/source"
)
{{range .Prelude}}
{{.}}
{{- end}}

type {{.ClassName}} struct {
	*rt.BaseParser
}

func New{{.ClassName}}(text string) *{{.ClassName}} {
	return &{{.ClassName}}{BaseParser: rt.NewBaseParser(text, source.DefaultConfig, nil)}
}

func New{{.ClassName}}WithHandler(text string, handler rt.RuleHandler) *{{.ClassName}} {
	return &{{.ClassName}}{BaseParser: rt.NewBaseParser(text, source.DefaultConfig, handler)}
}

{{.RulesSource}}
`))

type fileData struct {
	PackageName string
	ClassName   string
	Prelude     []string
	RulesSource string
}

// Generate renders grammar g into a complete, formatted Go source file.
func Generate(g *grammar.Grammar, opts Options) (string, error) {
	opts = opts.withDefaults()

	ruleMethod := func(name string) string { return exportedName(name) }

	var rules strings.Builder
	for _, r := range g.Rules {
		rules.WriteString(generateRule(r, opts.ClassName, opts.ReceiverName, ruleMethod))
		rules.WriteString("\n")
	}

	var buf bytes.Buffer
	data := fileData{
		PackageName: opts.PackageName,
		ClassName:   opts.ClassName,
		Prelude:     g.Prelude,
		RulesSource: rules.String(),
	}
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("codegen: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("codegen: generated invalid Go source: %w", err)
	}
	return string(formatted), nil
}

// exportedName turns a grammar rule's snake_case name into an exported Go
// identifier: "zero_or_more" -> "ZeroOrMore", "synthesized_rule_0" ->
// "SynthesizedRule0".
func exportedName(ruleName string) string {
	parts := strings.Split(ruleName, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	return b.String()
}

func altMethodName(ruleName string, index int) string {
	return fmt.Sprintf("%sAlt%d", lowerFirst(exportedName(ruleName)), index)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func generateRule(r *grammar.Rule, className, receiver string, ruleMethod func(string) string) string {
	var b strings.Builder
	memoCall := "ParsingRule"
	if r.IsLeftRecursive() {
		memoCall = "LeftRecursiveParsingRule"
	}

	fmt.Fprintf(&b, "func (%s *%s) %s() (interface{}, error) {\n", receiver, className, ruleMethod(r.Name))
	fmt.Fprintf(&b, "\treturn %s.%s(%q, func() (interface{}, error) {\n", receiver, memoCall, r.Name)
	fmt.Fprintf(&b, "\t\talts := []func() (interface{}, error){\n")
	for i := range r.Alternatives {
		fmt.Fprintf(&b, "\t\t\t%s.%s,\n", receiver, altMethodName(r.Name, i))
	}
	fmt.Fprintf(&b, "\t\t}\n")
	fmt.Fprintf(&b, "\t\tpos := %s.Mark()\n", receiver)
	fmt.Fprintf(&b, "\t\tfor _, alt := range alts {\n")
	fmt.Fprintf(&b, "\t\t\tif v, err := alt(); err == nil {\n")
	fmt.Fprintf(&b, "\t\t\t\treturn v, nil\n")
	fmt.Fprintf(&b, "\t\t\t} else if _, ok := err.(*rt.ParseError); !ok {\n")
	fmt.Fprintf(&b, "\t\t\t\treturn nil, err\n")
	fmt.Fprintf(&b, "\t\t\t}\n")
	fmt.Fprintf(&b, "\t\t\t%s.Rewind(pos)\n", receiver)
	fmt.Fprintf(&b, "\t\t}\n")
	fmt.Fprintf(&b, "\t\treturn nil, %s.MakeError(%q, pos)\n", receiver, "expected a "+r.Name)
	fmt.Fprintf(&b, "\t})\n")
	fmt.Fprintf(&b, "}\n\n")

	for i, alt := range r.Alternatives {
		b.WriteString(generateAlternative(className, r.Name, i, alt, receiver, ruleMethod))
	}
	return b.String()
}

func generateAlternative(className, ruleName string, index int, alt grammar.Alternative, receiver string, ruleMethod func(string) string) string {
	hasNonCut := false
	for _, item := range alt.Items {
		if item.Kind != grammar.KindCut {
			hasNonCut = true
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "func (%s *%s) %s() (interface{}, error) {\n", receiver, className, altMethodName(ruleName, index))
	if hasNonCut {
		fmt.Fprintf(&b, "\tpos := %s.Mark()\n", receiver)
		fmt.Fprintf(&b, "\tcut := false\n")
	}

	var varNames []string
	var attrs []grammar.Attributes
	for i, item := range alt.Items {
		attrs = append(attrs, item.Attributes)
		if item.Kind == grammar.KindCut {
			if hasNonCut {
				fmt.Fprintf(&b, "\tcut = true\n")
			}
			varNames = append(varNames, "nil")
			continue
		}
		v := fmt.Sprintf("v%d", i)
		varNames = append(varNames, v)
		fmt.Fprintf(&b, "\t%s, err := %s\n", v, item.GenExpr(receiver, ruleMethod))
		fmt.Fprintf(&b, "\tif err != nil {\n")
		fmt.Fprintf(&b, "\t\t%s.Rewind(pos)\n", receiver)
		fmt.Fprintf(&b, "\t\tif cut {\n")
		fmt.Fprintf(&b, "\t\t\treturn nil, rt.Cut(err)\n")
		fmt.Fprintf(&b, "\t\t}\n")
		fmt.Fprintf(&b, "\t\treturn nil, err\n")
		fmt.Fprintf(&b, "\t}\n")
	}

	fmt.Fprintf(&b, "\treturn rt.WrapNode(%q, []interface{}{%s}, []rt.Attributes{%s}, %s.Handler), nil\n",
		ruleName, strings.Join(varNames, ", "), attrsLiteral(attrs), receiver)
	fmt.Fprintf(&b, "}\n\n")
	return b.String()
}

func attrsLiteral(attrs []grammar.Attributes) string {
	parts := make([]string, len(attrs))
	for i, a := range attrs {
		parts[i] = fmt.Sprintf("{Name: %q, Ignore: %v}", a.Name, a.Ignore)
	}
	return strings.Join(parts, ", ")
}
