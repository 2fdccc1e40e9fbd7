package fss

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Call(t *testing.T) {
	term, err := Parse(`ObjectSomeValuesFrom(ex:hasChild <http://example.org/Person>)`)
	require.NoError(t, err)

	assert.Equal(t, Call, term.Kind)
	assert.Equal(t, "ObjectSomeValuesFrom", term.Text)
	require.Len(t, term.Args, 2)
	assert.Equal(t, Abbreviated, term.Args[0].Kind)
	assert.Equal(t, "ex:hasChild", term.Args[0].Text)
	assert.Equal(t, IRI, term.Args[1].Kind)
	assert.Equal(t, "http://example.org/Person", term.Args[1].Text)
	assert.True(t, term.Args[1].IsIRI())
}

func TestParse_Literals(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		text   string
		dt     string
		dtKind Kind
		lang   string
	}{
		{"full datatype", `"30"^^<http://www.w3.org/2001/XMLSchema#integer>`, "30", "http://www.w3.org/2001/XMLSchema#integer", IRI, ""},
		{"abbreviated datatype", `"1.5"^^xsd:double`, "1.5", "xsd:double", Abbreviated, ""},
		{"language tag", `"chat"@fr`, "chat", "", 0, "fr"},
		{"plain", `"plain"`, "plain", "", 0, ""},
		{"escapes", `"a\"b\\c"`, `a"b\c`, "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, Literal, term.Kind)
			assert.Equal(t, tt.text, term.Text)
			assert.Equal(t, tt.lang, term.Lang)
			if tt.dt == "" {
				assert.Nil(t, term.Datatype)
				return
			}
			require.NotNil(t, term.Datatype)
			assert.Equal(t, tt.dtKind, term.Datatype.Kind)
			assert.Equal(t, tt.dt, term.Datatype.Text)
		})
	}
}

func TestParse_WordKinds(t *testing.T) {
	for src, want := range map[string]Kind{
		"42":         Integer,
		"-1":         Integer,
		"owl:Thing":  Abbreviated,
		":local":     Abbreviated,
		"ex:":        Abbreviated,
		"Individual": Name,
	} {
		term, err := Parse(src)
		require.NoError(t, err, src)
		assert.Equal(t, want, term.Kind, src)
	}
}

func TestParse_CommentsAndPositions(t *testing.T) {
	src := "# leading comment\n  ObjectUnionOf(\n    ex:A # trailing\n    ex:B)"
	term, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, Pos{Line: 2, Col: 3}, term.Pos)
	require.Len(t, term.Args, 2)
	assert.Equal(t, Pos{Line: 3, Col: 5}, term.Args[0].Pos)
	assert.Equal(t, Pos{Line: 4, Col: 5}, term.Args[1].Pos)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		pos  Pos
	}{
		{"empty", "   ", Pos{Line: 1, Col: 1}},
		{"unclosed call", "ObjectUnionOf(ex:A", Pos{Line: 1, Col: 1}},
		{"stray paren", ")", Pos{Line: 1, Col: 1}},
		{"unterminated iri", "<http://x", Pos{Line: 1, Col: 1}},
		{"unterminated literal", `"abc`, Pos{Line: 1, Col: 1}},
		{"trailing input", "ex:A ex:B", Pos{Line: 1, Col: 6}},
		{"calling an iri", "ex:A(ex:B)", Pos{Line: 1, Col: 1}},
		{"bad escape", `"a\nb"`, Pos{Line: 1, Col: 1}},
		{"bad datatype", `"1"^^int`, Pos{Line: 1, Col: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "want *SyntaxError, got %T", err)
			assert.Equal(t, tt.pos, se.Pos)
		})
	}
}

func TestDecoder_Containers(t *testing.T) {
	src := `
Prefix(ex:=<http://example.org/>)
Ontology(<http://example.org/onto>
  ClassAssertion(ex:Person ex:Alice)
  ObjectPropertyAssertion(ex:hasChild ex:Alice ex:Bob)
)
`
	d := NewDecoder(strings.NewReader(src), "Ontology")

	var kinds []Kind
	var names []string
	for {
		term, err := d.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		kinds = append(kinds, term.Kind)
		names = append(names, term.Text)
	}

	assert.Equal(t, []Kind{Call, Open, IRI, Call, Call, Close}, kinds)
	assert.Equal(t, []string{"Prefix", "Ontology", "http://example.org/onto", "ClassAssertion", "ObjectPropertyAssertion", "Ontology"}, names)
	assert.Equal(t, 0, d.Depth())
}

func TestDecoder_PrefixDeclaration(t *testing.T) {
	term, err := Parse(`Prefix(ex:=<http://example.org/>)`)
	require.NoError(t, err)
	require.Len(t, term.Args, 3)
	assert.Equal(t, "ex:", term.Args[0].Text)
	assert.Equal(t, Equals, term.Args[1].Kind)
	assert.Equal(t, "http://example.org/", term.Args[2].Text)
}

func TestDecoder_UnclosedContainer(t *testing.T) {
	d := NewDecoder(strings.NewReader(`Ontology( ex:A`), "Ontology")
	_, err := d.Next()
	require.NoError(t, err)
	_, err = d.Next()
	require.NoError(t, err)
	_, err = d.Next()
	var se *SyntaxError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, se.Msg, "unclosed Ontology(")
}

func TestTerm_String(t *testing.T) {
	src := `DataHasValue(ex:age "a\"b"^^xsd:string)`
	term, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, src, term.String())
}
