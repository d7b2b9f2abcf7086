package extract_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.jacobcolvin.com/luadoc/comment"
	"go.jacobcolvin.com/luadoc/extract"
	"go.jacobcolvin.com/luadoc/signature"
	"go.jacobcolvin.com/luadoc/stringtest"
	"go.jacobcolvin.com/luadoc/typeexpr"
)

func TestExtractDocumentedFunction(t *testing.T) {
	t.Parallel()

	input := stringtest.Input(`
		--- Adds two numbers
		--- @param a number first
		--- @param b number second
		--- @return number sum
		function add(a, b) return a + b end
	`)

	fns, err := extract.New().ExtractBytes("math.lua", []byte(input))
	require.NoError(t, err)
	require.Len(t, fns, 1)

	fn := fns[0]
	assert.Equal(t, "add", fn.Signature.SimpleName)
	assert.Equal(t, "math.lua", fn.Path)
	assert.Equal(t, 5, fn.Line)
	require.True(t, fn.Documented())
	assert.Len(t, fn.Doc.Params, 2)
	require.NotNil(t, fn.Doc.Return)
	assert.Equal(t, "number", fn.Doc.Return.Type.Base())
	assert.Equal(t, "Adds two numbers", fn.Doc.Description)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	type want struct {
		name       string
		line       int
		documented bool
	}

	tcs := map[string]struct {
		input string
		opts  []extract.Option
		want  []want
	}{
		"orphan block produces nothing": {
			input: `
				--- Not attached.
				local x = 1
			`,
			want: nil,
		},
		"block at end of file": {
			input: `
				function first() end
				--- Dangling.
			`,
			want: []want{{name: "first", line: 1}},
		},
		"one blank line tolerated": {
			input: `
				--- Documented.

				function M.run() end
			`,
			want: []want{{name: "run", line: 3, documented: true}},
		},
		"two blank lines exceed lookahead": {
			input: `
				--- Lost.


				function M.run() end
			`,
			want: []want{{name: "run", line: 4}},
		},
		"wider lookahead": {
			input: `
				--- Kept.


				function M.run() end
			`,
			opts: []extract.Option{extract.WithLookahead(2)},
			want: []want{{name: "run", line: 4, documented: true}},
		},
		"zero lookahead": {
			input: `
				--- Lost.

				function M.run() end
			`,
			opts: []extract.Option{extract.WithLookahead(0)},
			want: []want{{name: "run", line: 3}},
		},
		"source order": {
			input: `
				--- One.
				function M.one() end
				function M.two() end
				--- Three.
				M.three = function(x) end
			`,
			want: []want{
				{name: "one", line: 2, documented: true},
				{name: "two", line: 3},
				{name: "three", line: 5, documented: true},
			},
		},
		"undocumented excluded": {
			input: `
				--- One.
				function M.one() end
				function M.two() end
			`,
			opts: []extract.Option{extract.WithUndocumented(false)},
			want: []want{{name: "one", line: 2, documented: true}},
		},
		"private dropped by default": {
			input: `
				--- Hidden.
				local function helper() end
				--- Internal.
				function M.__impl() end
				--- Shown.
				function M.api() end
			`,
			want: []want{{name: "api", line: 6, documented: true}},
		},
		"private included": {
			input: `
				--- Hidden.
				local function helper() end
				function M.__impl() end
			`,
			opts: []extract.Option{extract.WithPrivate(true)},
			want: []want{
				{name: "helper", line: 2, documented: true},
				{name: "__impl", line: 3},
			},
		},
		"private block does not leak to next function": {
			input: `
				--- Hidden.
				local function helper() end
				function M.api() end
			`,
			want: []want{{name: "api", line: 3}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			e := extract.New(tc.opts...)
			fns, err := e.Extract("test.lua", stringtest.Lines(tc.input))
			require.NoError(t, err)

			var got []want
			for _, fn := range fns {
				got = append(got, want{
					name:       fn.Signature.SimpleName,
					line:       fn.Line,
					documented: fn.Documented(),
				})
			}

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtractNeverEmitsNonPublicByDefault(t *testing.T) {
	t.Parallel()

	lines := []string{
		"local function a() end",
		"local b = function() end",
		"function __c() end",
		"function M.__d() end",
		"M.__e = function() end",
		"function M:__f() end",
	}

	fns, err := extract.New().Extract("test.lua", lines)
	require.NoError(t, err)
	assert.Empty(t, fns)

	fns, err = extract.New(extract.WithPrivate(true)).Extract("test.lua", lines)
	require.NoError(t, err)
	require.Len(t, fns, len(lines))

	for _, fn := range fns {
		assert.False(t, fn.Signature.IsPublic(), fn.Signature.QualifiedName)
	}
}

func TestExtractExampleFence(t *testing.T) {
	t.Parallel()

	input := stringtest.Input(`
		--- Greets.
		--- ` + "```lua" + `
		--- greet("x")
		--- @param not a directive
		--- ` + "```" + `
		--- @param name string
		function M.greet(name) end
	`)

	fns, err := extract.New().ExtractBytes("greet.lua", []byte(input))
	require.NoError(t, err)
	require.Len(t, fns, 1)

	doc := fns[0].Doc
	require.NotNil(t, doc)
	assert.Equal(t, []string{
		"```lua",
		`greet("x")`,
		"@param not a directive",
		"```",
	}, doc.Notes)
	assert.Equal(t, []comment.Param{
		{Name: "name", Type: typeexpr.Named("string")},
	}, doc.Params)
}

func TestExtractUnterminatedFence(t *testing.T) {
	t.Parallel()

	input := stringtest.Input(`
		--- Summary.
		--- ` + "```" + `
		--- code()
		function M.f() end
	`)

	fns, err := extract.New().ExtractBytes("f.lua", []byte(input))
	require.NoError(t, err)
	require.Len(t, fns, 1)
	require.NotNil(t, fns[0].Doc)
	assert.Equal(t, []string{"```", "code()", "```"}, fns[0].Doc.Notes)
}

func TestExtractStrict(t *testing.T) {
	t.Parallel()

	input := stringtest.Input(`
		--- Broken.
		--- @param a number[
		function M.f(a) end
	`)

	fns, err := extract.New().ExtractBytes("f.lua", []byte(input))
	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Empty(t, fns[0].Doc.Params)

	fns, err = extract.New(extract.WithStrict(true)).ExtractBytes("f.lua", []byte(input))
	require.Error(t, err)
	assert.Nil(t, fns)
	require.ErrorIs(t, err, typeexpr.ErrMalformed)

	var perr *extract.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "f.lua", perr.Path)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, err.Error(), "f.lua:2: ")
}

func TestExtractRichTypes(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input     string
		wantTypes []string
	}{
		"generic table": {
			input: `
				--- @param map table<string,number> the map
				--- @param key string
				function M.get(map, key) end
			`,
			wantTypes: []string{"table<string,number>", "string"},
		},
		"generic table with spaces": {
			input: `
				--- @param map table<string, number> the map
				--- @param key string
				function M.get(map, key) end
			`,
			wantTypes: []string{"table<string, number>", "string"},
		},
		"function and literal types": {
			input: `
				--- @param cb fun(x: number): string
				--- @param mode "r"|"w"
				--- @param opts {}
				function M.open(cb, mode, opts) end
			`,
			wantTypes: []string{"fun(x: number): string", `"r"|"w"`, "{}"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, strict := range []bool{false, true} {
				fns, err := extract.New(extract.WithStrict(strict)).
					ExtractBytes("x.lua", []byte(stringtest.Input(tc.input)))
				require.NoError(t, err)
				require.Len(t, fns, 1)

				params := fns[0].Doc.Params
				require.Len(t, params, len(tc.wantTypes))

				for i, want := range tc.wantTypes {
					assert.Equal(t, want, params[i].Type.String())
				}
			}
		})
	}
}

func TestExtractCRLF(t *testing.T) {
	t.Parallel()

	input := stringtest.JoinCRLF(
		"--- Summary.",
		"--- @return boolean",
		"function M.ok() end",
	)

	fns, err := extract.New().ExtractBytes("crlf.lua", []byte(input))
	require.NoError(t, err)
	require.Len(t, fns, 1)
	assert.Equal(t, "Summary.", fns[0].Doc.Description)
	assert.Equal(t, "boolean", fns[0].Doc.Return.Type.Base())
}

func TestFunctionJSON(t *testing.T) {
	t.Parallel()

	fn := extract.Function{
		Path: "a.lua",
		Line: 3,
		Signature: signature.Signature{
			QualifiedName: "M.a",
			SimpleName:    "a",
			RawParameters: "x",
			Visibility:    signature.VisibilityPublic,
		},
	}

	out, err := json.Marshal(fn)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))

	assert.NotContains(t, got, "doc")
	assert.InDelta(t, 3, got["line"], 0)
	assert.Equal(t, "a.lua", got["path"])
}
