package tables_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jcorbin/mdtable/markdown"
	"github.com/jcorbin/mdtable/strikethrough"
	"github.com/jcorbin/mdtable/tables"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func Example() {
	proc, err := markdown.NewProcessor(markdown.WithExtensions(tables.New()))
	if err != nil {
		fmt.Println(err)
		return
	}
	blocks, err := proc.ProcessDocument([]byte(`
| foo | bar |
| :-: | --: |
| baz | *bim* |
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range blocks {
		fmt.Printf("%+v\n", b)
	}

	// Output:
	// Table
	// head: th center [Text("foo")], th right [Text("bar")]
	// row 1: td center [Text("baz")], td right [Emphasis[Text("bim")]]
}

func ExampleTableBlock_Format() {
	proc, err := markdown.NewProcessor(markdown.WithExtensions(tables.New()))
	if err != nil {
		fmt.Println(err)
		return
	}
	blocks, err := proc.ProcessDocument([]byte(`
| a | b |
| - | - |
| 1 | 2 |

| no | body |
| -- | ---- |
`))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, b := range blocks {
		fmt.Printf("%v\n", b)
	}

	// Output:
	// Table head=["a" | "b"] body=[["1" | "2"]]
	// Table head=["no" | "body"] body=<nil>
}

var cmpOpts = cmp.Options{cmpopts.EquateEmpty()}

func text(s string) markdown.Inline { return markdown.Text{Content: s} }

func th(align tables.Alignment, inlines ...markdown.Inline) tables.TableCell {
	return tables.TableCell{Inlines: inlines, IsHeader: true, Alignment: align}
}

func td(align tables.Alignment, inlines ...markdown.Inline) tables.TableCell {
	return tables.TableCell{Inlines: inlines, Alignment: align}
}

func row(cells ...tables.TableCell) tables.TableRow {
	return tables.TableRow{Cells: cells}
}

func table(head tables.TableRow, body ...tables.TableRow) tables.TableBlock {
	tb := tables.TableBlock{Header: tables.TableHead{HeaderRow: head}}
	if len(body) > 0 {
		tb.Body = &tables.TableBody{Rows: body}
	}
	return tb
}

func para(inlines ...markdown.Inline) markdown.Block {
	return markdown.Paragraph{Inlines: inlines}
}

const (
	left   = tables.AlignLeft
	center = tables.AlignCenter
	right  = tables.AlignRight
)

type docTest struct {
	name   string
	input  string
	expect []markdown.Block
}

func (dt docTest) run(t *testing.T, engine string, exts ...markdown.ProcessorExtension) {
	t.Run(dt.name, func(t *testing.T) {
		if len(exts) == 0 {
			exts = []markdown.ProcessorExtension{tables.New()}
		}
		proc, err := markdown.NewProcessor(
			markdown.WithEngine(engine),
			markdown.WithExtensions(exts...))
		require.NoError(t, err, "must build processor")
		blocks, err := proc.ProcessDocument([]byte(dt.input))
		require.NoError(t, err, "must process document")
		if diff := cmp.Diff(dt.expect, blocks, cmpOpts); diff != "" {
			t.Errorf("unexpected blocks (-want +got):\n%s", diff)
		}
	})
}

var (
	example198 = docTest{
		name: "example 198",
		input: "" +
			"| foo | bar |\n" +
			"| --- | --- |\n" +
			"| baz | bim |\n",
		expect: []markdown.Block{
			table(
				row(th(left, text("foo")), th(left, text("bar"))),
				row(td(left, text("baz")), td(left, text("bim"))),
			),
		},
	}

	example199 = docTest{
		name: "example 199",
		input: "" +
			"| abc | defghi |\n" +
			":-: | -----------:\n" +
			"bar | baz\n",
		expect: []markdown.Block{
			table(
				row(th(center, text("abc")), th(right, text("defghi"))),
				row(td(center, text("bar")), td(right, text("baz"))),
			),
		},
	}

	example200 = docTest{
		name: "example 200",
		input: "" +
			"| f\\|oo  |\n" +
			"| ------ |\n" +
			"| b `\\|` az |\n" +
			"| b **\\|** im |\n",
		expect: []markdown.Block{
			table(
				row(th(left, text("f|oo"))),
				row(td(left, text("b "), markdown.Code{Content: "|"}, text(" az"))),
				row(td(left, text("b "), markdown.StrongEmphasis{Inlines: []markdown.Inline{text("|")}}, text(" im"))),
			),
		},
	}

	example201 = docTest{
		name: "example 201",
		input: "" +
			"| abc | def |\n" +
			"| --- | --- |\n" +
			"| bar | baz |\n" +
			"> bar\n",
		expect: []markdown.Block{
			table(
				row(th(left, text("abc")), th(left, text("def"))),
				row(td(left, text("bar")), td(left, text("baz"))),
			),
			markdown.BlockQuote{Blocks: []markdown.Block{para(text("bar"))}},
		},
	}

	example202 = docTest{
		name: "example 202",
		input: "" +
			"| abc | def |\n" +
			"| --- | --- |\n" +
			"| bar | baz |\n" +
			"bar\n" +
			"\n" +
			"bar\n",
		expect: []markdown.Block{
			table(
				row(th(left, text("abc")), th(left, text("def"))),
				row(td(left, text("bar")), td(left, text("baz"))),
				row(td(left, text("bar")), td(left)),
			),
			para(text("bar")),
		},
	}

	example203 = docTest{
		name: "example 203",
		input: "" +
			"| abc | def |\n" +
			"| --- |\n" +
			"| bar |\n",
		expect: []markdown.Block{
			para(
				text("| abc | def |"),
				markdown.SoftLineBreak{},
				text("| --- |"),
				markdown.SoftLineBreak{},
				text("| bar |"),
			),
		},
	}

	example204 = docTest{
		name: "example 204",
		input: "" +
			"| abc | def |\n" +
			"| --- | --- |\n" +
			"| bar |\n" +
			"| bar | baz | boo |\n",
		expect: []markdown.Block{
			table(
				row(th(left, text("abc")), th(left, text("def"))),
				row(td(left, text("bar")), td(left)),
				row(td(left, text("bar")), td(left, text("baz"))),
			),
		},
	}

	example205 = docTest{
		name: "example 205",
		input: "" +
			"| abc | def |\n" +
			"| --- | --- |\n",
		expect: []markdown.Block{
			table(row(th(left, text("abc")), th(left, text("def")))),
		},
	}
)

func TestTables_goldmark(t *testing.T) {
	for _, dt := range []docTest{
		example198,
		example199,
		example200,
		example201,
		example202,
		example203,
		example204,
		example205,
	} {
		dt.run(t, markdown.EngineGoldmark)
	}
}

func TestTables_blackfriday(t *testing.T) {
	for _, dt := range []docTest{
		example198,
		example199,
		example201,
		example203,
		example204,
		example205,

		// blackfriday ends a table at the first line without a pipe
		{
			name:  "example 202 without lazy rows",
			input: example202.input,
			expect: []markdown.Block{
				table(
					row(th(left, text("abc")), th(left, text("def"))),
					row(td(left, text("bar")), td(left, text("baz"))),
				),
				para(text("bar")),
				para(text("bar")),
			},
		},

		// blackfriday needs at least three characters per delimiter cell
		{
			name:  "one dash delimiters",
			input: "| a | b |\n| - | - |\n| 1 | 2 |\n",
			expect: []markdown.Block{para(
				text("| a | b |"),
				markdown.SoftLineBreak{},
				text("| - | - |"),
				markdown.SoftLineBreak{},
				text("| 1 | 2 |"),
			)},
		},
		{
			name:  "two dash delimiters",
			input: "| a | b |\n| -- | -- |\n| 1 | 2 |\n",
			expect: []markdown.Block{para(
				text("| a | b |"),
				markdown.SoftLineBreak{},
				text("| -- | -- |"),
				markdown.SoftLineBreak{},
				text("| 1 | 2 |"),
			)},
		},
	} {
		dt.run(t, markdown.EngineBlackfriday)
	}

	// blackfriday keeps the backslash of an escaped pipe within a code span
	t.Run("example 200 code span", func(t *testing.T) {
		tb := onlyTable(t, markdown.EngineBlackfriday, example200.input)
		require.NotNil(t, tb.Body)
		require.Len(t, tb.Body.Rows, 2)
		assert.Equal(t, []markdown.Inline{text("f|oo")}, tb.Header.HeaderRow.Cells[0].Inlines)
		assert.Contains(t, tb.Body.Rows[0].Cells[0].Inlines, markdown.Inline(markdown.Code{Content: `\|`}))
	})
}

func onlyTable(t *testing.T, engine, input string) tables.TableBlock {
	t.Helper()
	proc, err := markdown.NewProcessor(
		markdown.WithEngine(engine),
		markdown.WithExtensions(tables.New()))
	require.NoError(t, err, "must build processor")
	blocks, err := proc.ProcessDocument([]byte(input))
	require.NoError(t, err, "must process document")
	require.Len(t, blocks, 1, "expected a single block")
	tb, ok := blocks[0].(tables.TableBlock)
	require.True(t, ok, "expected a table, got %T", blocks[0])
	return tb
}

func TestTables_shapes(t *testing.T) {
	for _, engine := range markdown.EngineNames() {
		t.Run(engine, func(t *testing.T) {
			t.Run("header cells", func(t *testing.T) {
				tb := onlyTable(t, engine, example198.input)
				for _, cell := range tb.Header.HeaderRow.Cells {
					assert.True(t, cell.IsHeader, "header cell %v", cell)
				}
				for _, r := range tb.Body.Rows {
					for _, cell := range r.Cells {
						assert.False(t, cell.IsHeader, "body cell %v", cell)
					}
				}
			})

			t.Run("no body", func(t *testing.T) {
				tb := onlyTable(t, engine, example205.input)
				assert.Nil(t, tb.Body, "expected no body")
				assert.Len(t, tb.Rows(), 1)
			})

			t.Run("empty cells", func(t *testing.T) {
				tb := onlyTable(t, engine, "| a |  |\n| --- | --- |\n|  | b |\n")
				require.NotNil(t, tb.Body)
				empty := tb.Header.HeaderRow.Cells[1].Inlines
				assert.NotNil(t, empty, "expected empty, not nil, inline content")
				assert.Len(t, empty, 0)
				assert.Len(t, tb.Body.Rows[0].Cells[0].Inlines, 0)
			})

			t.Run("column alignment", func(t *testing.T) {
				tb := onlyTable(t, engine, ""+
					"| l | c | r | d |\n"+
					"| :-- | :-: | --: | --- |\n"+
					"| 1 |\n")
				want := []tables.Alignment{left, center, right, left}
				for _, r := range tb.Rows() {
					require.Len(t, r.Cells, len(want))
					for i, cell := range r.Cells {
						assert.Equal(t, want[i], cell.Alignment, "column %v", i)
					}
				}
			})
		})
	}
}

func TestTables_inlineExtensions(t *testing.T) {
	const input = "" +
		"| ~~old~~ | `code` |\n" +
		"| --- | --- |\n" +
		"| *a* ~~b~~ | [c](http://c.example) |\n"

	for _, engine := range markdown.EngineNames() {
		docTest{
			name:  engine + " with strikethrough",
			input: input,
			expect: []markdown.Block{
				table(
					row(
						th(left, strikethrough.Strikethrough{Inlines: []markdown.Inline{text("old")}}),
						th(left, markdown.Code{Content: "code"}),
					),
					row(
						td(left,
							markdown.Emphasis{Inlines: []markdown.Inline{text("a")}},
							text(" "),
							strikethrough.Strikethrough{Inlines: []markdown.Inline{text("b")}}),
						td(left, markdown.Link{
							Destination: "http://c.example",
							Inlines:     []markdown.Inline{text("c")},
						}),
					),
				),
			},
		}.run(t, engine, tables.New(), strikethrough.New())
	}

	docTest{
		name:  "goldmark without strikethrough",
		input: input,
		expect: []markdown.Block{
			table(
				row(th(left, text("~~old~~")), th(left, markdown.Code{Content: "code"})),
				row(
					td(left, markdown.Emphasis{Inlines: []markdown.Inline{text("a")}}, text(" ~~b~~")),
					td(left, markdown.Link{
						Destination: "http://c.example",
						Inlines:     []markdown.Inline{text("c")},
					}),
				),
			),
		},
	}.run(t, markdown.EngineGoldmark)
}

func TestTables_withoutGrammar(t *testing.T) {
	proc, err := markdown.NewProcessor()
	require.NoError(t, err)
	blocks, err := proc.ProcessDocument([]byte(example198.input))
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.IsType(t, markdown.Paragraph{}, blocks[0], "expected no table without its grammar")
}

type shadowBlock struct{}

func (shadowBlock) Kind() markdown.BlockKind { return markdown.KindCustomBlock }
func (shadowBlock) BlockName() string        { return "Shadow" }

type shadowExtension struct{}

func (shadowExtension) Grammar() markdown.Grammar                          { return markdown.Grammar{} }
func (shadowExtension) InlineProcessor() markdown.InlineProcessorExtension { return nil }
func (shadowExtension) BlockProcessor() markdown.BlockProcessorExtension   { return shadowExtension{} }
func (shadowExtension) CanProcess(raw markdown.RawBlock) bool              { return raw.Type == markdown.RawTable }
func (shadowExtension) Process(markdown.RawBlock, markdown.Context) (markdown.CustomBlock, error) {
	return shadowBlock{}, nil
}

func TestTables_registrationOrder(t *testing.T) {
	for _, tc := range []struct {
		name   string
		exts   []markdown.ProcessorExtension
		expect markdown.Block
	}{
		{"tables first", []markdown.ProcessorExtension{tables.New(), shadowExtension{}}, example205.expect[0]},
		{"shadow first", []markdown.ProcessorExtension{shadowExtension{}, tables.New()}, shadowBlock{}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			proc, err := markdown.NewProcessor(markdown.WithExtensions(tc.exts...))
			require.NoError(t, err)
			blocks, err := proc.ProcessDocument([]byte(example205.input))
			require.NoError(t, err)
			if diff := cmp.Diff([]markdown.Block{tc.expect}, blocks, cmpOpts); diff != "" {
				t.Errorf("unexpected blocks (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTables_concurrent(t *testing.T) {
	const workers = 8
	var (
		wg      sync.WaitGroup
		results = make([][]markdown.Block, workers)
		errs    = make([]error, workers)
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			proc, err := markdown.NewProcessor(markdown.WithExtensions(tables.New()))
			if err != nil {
				errs[i] = err
				return
			}
			results[i], errs[i] = proc.ProcessDocument([]byte(example200.input))
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i], "worker %v", i)
		if diff := cmp.Diff(example200.expect, results[i], cmpOpts); diff != "" {
			t.Errorf("worker %v: unexpected blocks (-want +got):\n%s", i, diff)
		}
	}
}

func TestAlignmentOf(t *testing.T) {
	for _, tc := range []struct {
		marker markdown.CellAlign
		expect tables.Alignment
	}{
		{markdown.CellAlignNone, left},
		{markdown.CellAlignLeft, left},
		{markdown.CellAlignCenter, center},
		{markdown.CellAlignRight, right},
		{markdown.CellAlign(99), left},
	} {
		t.Run(tc.marker.String(), func(t *testing.T) {
			assert.Equal(t, tc.expect, tables.AlignmentOf(tc.marker))
		})
	}
}

func TestAlignment_text(t *testing.T) {
	for _, a := range []tables.Alignment{left, center, right} {
		b, err := a.MarshalText()
		require.NoError(t, err)
		var back tables.Alignment
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, a, back)
	}
	_, err := tables.Alignment(7).MarshalText()
	assert.Error(t, err)
	var a tables.Alignment
	assert.Error(t, a.UnmarshalText([]byte("justify")))
}

func TestExtension(t *testing.T) {
	a, b := tables.New(), tables.New()
	assert.NotSame(t, a, b, "expected independent extension values")
	assert.Nil(t, a.InlineProcessor())
	g := a.Grammar()
	assert.NotNil(t, g.Goldmark)
	assert.NotZero(t, g.Blackfriday)

	bp := a.BlockProcessor()
	require.NotNil(t, bp)
	assert.True(t, bp.CanProcess(markdown.RawBlock{Type: markdown.RawTable}))
	for _, typ := range []markdown.RawType{
		markdown.RawParagraph,
		markdown.RawTableRow,
		markdown.RawTableCell,
		markdown.RawOther,
	} {
		assert.False(t, bp.CanProcess(markdown.RawBlock{Type: typ}), "%v", typ)
	}
}

func TestProcessTable_unsupported(t *testing.T) {
	proc, err := markdown.NewProcessor(markdown.WithExtensions(tables.New()))
	require.NoError(t, err)

	cell := func(s string) markdown.RawBlock {
		return markdown.RawBlock{
			Type:    markdown.RawTableCell,
			Inlines: []markdown.RawInline{{Type: markdown.RawText, Literal: s}},
		}
	}
	rawRow := func(cells ...markdown.RawBlock) markdown.RawBlock {
		return markdown.RawBlock{Type: markdown.RawTableRow, Children: cells}
	}
	head := markdown.RawBlock{Type: markdown.RawTableHead, Children: []markdown.RawBlock{rawRow(cell("a"))}}

	for _, tc := range []struct {
		name string
		raw  markdown.RawBlock
	}{
		{"paragraph", markdown.RawBlock{Type: markdown.RawParagraph}},
		{"bare row", rawRow(cell("a"))},
		{"no head", markdown.RawBlock{Type: markdown.RawTable}},
		{"empty head", markdown.RawBlock{
			Type:     markdown.RawTable,
			Children: []markdown.RawBlock{{Type: markdown.RawTableHead}},
		}},
		{"two head rows", markdown.RawBlock{
			Type: markdown.RawTable,
			Children: []markdown.RawBlock{{
				Type:     markdown.RawTableHead,
				Children: []markdown.RawBlock{rawRow(cell("a")), rawRow(cell("b"))},
			}},
		}},
		{"body before head", markdown.RawBlock{
			Type: markdown.RawTable,
			Children: []markdown.RawBlock{
				{Type: markdown.RawTableBody, Children: []markdown.RawBlock{rawRow(cell("a"))}},
				head,
			},
		}},
		{"two bodies", markdown.RawBlock{
			Type: markdown.RawTable,
			Children: []markdown.RawBlock{
				head,
				{Type: markdown.RawTableBody, Children: []markdown.RawBlock{rawRow(cell("a"))}},
				{Type: markdown.RawTableBody, Children: []markdown.RawBlock{rawRow(cell("b"))}},
			},
		}},
		{"paragraph in row", markdown.RawBlock{
			Type: markdown.RawTable,
			Children: []markdown.RawBlock{{
				Type:     markdown.RawTableHead,
				Children: []markdown.RawBlock{rawRow(markdown.RawBlock{Type: markdown.RawParagraph})},
			}},
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tables.ProcessTable(tc.raw, proc)
			assert.True(t, errors.Is(err, tables.ErrUnsupportedBlock), "expected unsupported block error, got %v", err)

			_, err = tables.New().BlockProcessor().Process(tc.raw, proc)
			assert.True(t, errors.Is(err, tables.ErrUnsupportedBlock), "expected unsupported block error, got %v", err)
		})
	}

	t.Run("message", func(t *testing.T) {
		_, err := tables.ProcessTable(markdown.RawBlock{Type: markdown.RawParagraph}, proc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Paragraph")
	})

	t.Run("through the processor", func(t *testing.T) {
		_, err := proc.ProcessBlock(markdown.RawBlock{Type: markdown.RawTable})
		assert.True(t, errors.Is(err, tables.ErrUnsupportedBlock), "expected unsupported block error, got %v", err)
	})

	t.Run("well formed", func(t *testing.T) {
		tb, err := tables.ProcessTable(markdown.RawBlock{
			Type: markdown.RawTable,
			Children: []markdown.RawBlock{
				head,
				{Type: markdown.RawTableBody, Children: []markdown.RawBlock{
					rawRow(cell("1"), cell("2"), cell("3")),
					rawRow(),
				}},
			},
		}, proc)
		require.NoError(t, err)
		want := table(
			row(th(left, text("a"))),
			row(td(left, text("1")), td(left, text("2")), td(left, text("3"))),
			row(),
		)
		if diff := cmp.Diff(want, tb, cmpOpts); diff != "" {
			t.Errorf("unexpected table (-want +got):\n%s", diff)
		}
	})

	t.Run("empty body section", func(t *testing.T) {
		tb, err := tables.ProcessTable(markdown.RawBlock{
			Type:     markdown.RawTable,
			Children: []markdown.RawBlock{head, {Type: markdown.RawTableBody}},
		}, proc)
		require.NoError(t, err)
		assert.Nil(t, tb.Body, "expected an empty body section to read as no body")
	})
}
