package typeexpr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/luadoc/typeexpr"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  *typeexpr.Expr
	}{
		"named": {
			input: "string",
			want:  typeexpr.Named("string"),
		},
		"qualified name": {
			input: "Module.Player",
			want:  typeexpr.Named("Module.Player"),
		},
		"optional": {
			input: "string?",
			want:  &typeexpr.Expr{Kind: typeexpr.KindNamed, Name: "string", Optional: true},
		},
		"array": {
			input: "number[]",
			want:  &typeexpr.Expr{Kind: typeexpr.KindArray, Element: typeexpr.Named("number")},
		},
		"optional array": {
			input: "number[]?",
			want: &typeexpr.Expr{
				Kind:     typeexpr.KindArray,
				Element:  typeexpr.Named("number"),
				Optional: true,
			},
		},
		"nested array": {
			input: "number[][]",
			want: &typeexpr.Expr{
				Kind: typeexpr.KindArray,
				Element: &typeexpr.Expr{
					Kind:    typeexpr.KindArray,
					Element: typeexpr.Named("number"),
				},
			},
		},
		"union": {
			input: "string|number",
			want: &typeexpr.Expr{
				Kind:    typeexpr.KindUnion,
				Members: []*typeexpr.Expr{typeexpr.Named("string"), typeexpr.Named("number")},
			},
		},
		"union with array member": {
			input: "string|number[]",
			want: &typeexpr.Expr{
				Kind: typeexpr.KindUnion,
				Members: []*typeexpr.Expr{
					typeexpr.Named("string"),
					{Kind: typeexpr.KindArray, Element: typeexpr.Named("number")},
				},
			},
		},
		"union trailing optional": {
			input: "string|nil|number?",
			want: &typeexpr.Expr{
				Kind:     typeexpr.KindUnion,
				Optional: true,
				Members: []*typeexpr.Expr{
					typeexpr.Named("string"),
					typeexpr.Named("nil"),
					{Kind: typeexpr.KindNamed, Name: "number", Optional: true},
				},
			},
		},
		"union leading optional": {
			input: "string?|number",
			want: &typeexpr.Expr{
				Kind: typeexpr.KindUnion,
				Members: []*typeexpr.Expr{
					{Kind: typeexpr.KindNamed, Name: "string", Optional: true},
					typeexpr.Named("number"),
				},
			},
		},
		"whitespace tolerated": {
			input: " string | number ",
			want: &typeexpr.Expr{
				Kind:    typeexpr.KindUnion,
				Members: []*typeexpr.Expr{typeexpr.Named("string"), typeexpr.Named("number")},
			},
		},
		"grouped union flattens": {
			input: "(a|b)|c",
			want: &typeexpr.Expr{
				Kind: typeexpr.KindUnion,
				Members: []*typeexpr.Expr{
					typeexpr.Named("a"), typeexpr.Named("b"), typeexpr.Named("c"),
				},
			},
		},
		"array of union": {
			input: "(string|number)[]",
			want: &typeexpr.Expr{
				Kind: typeexpr.KindArray,
				Element: &typeexpr.Expr{
					Kind:    typeexpr.KindUnion,
					Members: []*typeexpr.Expr{typeexpr.Named("string"), typeexpr.Named("number")},
				},
			},
		},
		"varargs": {
			input: "...",
			want:  typeexpr.Named("..."),
		},
		"generic table": {
			input: "table<string,number>",
			want:  typeexpr.Named("table<string,number>"),
		},
		"table with spaces": {
			input: "table<string, number>",
			want:  typeexpr.Named("table<string, number>"),
		},
		"function type": {
			input: "fun(x:number):string",
			want:  typeexpr.Named("fun(x:number):string"),
		},
		"function type with spaces": {
			input: "fun(x: number): string",
			want:  typeexpr.Named("fun(x: number): string"),
		},
		"function type in union": {
			input: "fun(): string | nil",
			want: &typeexpr.Expr{
				Kind:    typeexpr.KindUnion,
				Members: []*typeexpr.Expr{typeexpr.Named("fun(): string"), typeexpr.Named("nil")},
			},
		},
		"function type with union inside": {
			input: "fun(x:string|nil):boolean?",
			want:  &typeexpr.Expr{Kind: typeexpr.KindNamed, Name: "fun(x:string|nil):boolean", Optional: true},
		},
		"empty table": {
			input: "{}",
			want:  typeexpr.Named("{}"),
		},
		"string literal": {
			input: `"literal"`,
			want:  typeexpr.Named(`"literal"`),
		},
		"literal union": {
			input: `"a"|'b'|nil`,
			want: &typeexpr.Expr{
				Kind: typeexpr.KindUnion,
				Members: []*typeexpr.Expr{
					typeexpr.Named(`"a"`), typeexpr.Named("'b'"), typeexpr.Named("nil"),
				},
			},
		},
		"array of generic table": {
			input: "table<K,V>[]",
			want:  &typeexpr.Expr{Kind: typeexpr.KindArray, Element: typeexpr.Named("table<K,V>")},
		},
		"optional group flattens onto last member": {
			input: "(a|b)?|c",
			want: &typeexpr.Expr{
				Kind: typeexpr.KindUnion,
				Members: []*typeexpr.Expr{
					typeexpr.Named("a"),
					{Kind: typeexpr.KindNamed, Name: "b", Optional: true},
					typeexpr.Named("c"),
				},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := typeexpr.Parse(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"empty":                    "",
		"blank":                    "   ",
		"unmatched open":           "number[",
		"unmatched close":          "number]",
		"leading close":            "]",
		"dangling pipe":            "string|",
		"leading pipe":             "|string",
		"double optional":          "string??",
		"unclosed group":           "(string|number",
		"stray group close":        "string)",
		"bare marker":              "?",
		"unclosed angle":           "table<string",
		"stray angle close":        "string>",
		"unterminated quote":       `"abc`,
		"optional inside group":    "(string?)",
		"optional member in group": "(a|b?)",
		"optional in nested group": "x|(a|b?)",
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := typeexpr.Parse(input)
			require.ErrorIs(t, err, typeexpr.ErrMalformed)
		})
	}
}

func TestOptionalMatchesSuffix(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"string", "string?", "number[]", "number[]?", "string|number",
		"string|number?", "string?|number", "a|b|c?", "T", "T?[]", "T?[]?",
		"(a|b)", "(a|b)?", "x|(a|b)", "x|(a|b)?", "(a|b)?|c", "(a?|b)",
		"(a|b)[]?", "table<string?>", "fun():string?", "fun(x: T): R?", "fun(x?)", "{}?",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			t.Parallel()

			got, err := typeexpr.Parse(input)
			require.NoError(t, err)
			assert.Equal(t, strings.HasSuffix(input, "?"), got.Optional)
		})
	}
}

func TestAccessors(t *testing.T) {
	t.Parallel()

	opt := typeexpr.MustParse("string?")
	assert.Equal(t, "string", opt.Base())
	assert.True(t, opt.Optional)
	assert.False(t, opt.IsArray())

	arr := typeexpr.MustParse("number[]")
	assert.Equal(t, "number", arr.Base())
	assert.True(t, arr.IsArray())

	u := typeexpr.MustParse("string|number")
	require.Equal(t, typeexpr.KindUnion, u.Kind)
	require.Len(t, u.Members, 2)
	assert.Equal(t, "string", u.Members[0].Name)
	assert.Equal(t, "number", u.Members[1].Name)
	assert.Empty(t, u.Base())
}

func TestString(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input string
		want  string
	}{
		"named":            {input: "string", want: "string"},
		"optional":         {input: "string?", want: "string?"},
		"array":            {input: "number[]", want: "number[]"},
		"union":            {input: "string | number", want: "string|number"},
		"trailing opt":     {input: "string|number?", want: "string|number?"},
		"array of union":   {input: "(a|b)[]", want: "(a|b)[]"},
		"optional group":   {input: "(a|b)?", want: "(a|b)?"},
		"optional element": {input: "string?[]", want: "string?[]"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, typeexpr.MustParse(tc.input).String())
		})
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	var names []string

	typeexpr.MustParse("(T|string)[]|number").Walk(func(e *typeexpr.Expr) {
		if e.Kind == typeexpr.KindNamed {
			names = append(names, e.Name)
		}
	})

	assert.Equal(t, []string{"T", "string", "number"}, names)
}
