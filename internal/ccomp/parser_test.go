package ccomp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) (*Program, error) {
	lx := NewLexer(strings.NewReader(src))
	p, err := NewParser(lx)
	require.NoError(t, err, "unexpected parser construction error")
	return p.ParseProgram()
}

func Test_Parser_emptyFunction(t *testing.T) {
	prog, err := parseSrc(t, "int main() {}")
	require.NoError(t, err)
	require.Len(t, prog.Funcs, 1)

	fn := prog.Funcs[0]
	require.Equal(t, "main", fn.Name)
	require.Empty(t, fn.Params)
	require.Empty(t, fn.Body.Stmts)
}

func Test_Parser_params(t *testing.T) {
	prog, err := parseSrc(t, "int add(int a, int *b) { return a; }")
	require.NoError(t, err)
	require.Len(t, prog.Funcs, 1)

	fn := prog.Funcs[0]
	require.Equal(t, []Param{
		{Name: "a", Type: Type{Kind: KindInt}},
		{Name: "b", Type: Type{Kind: KindPointer}},
	}, fn.Params)
}

func Test_Parser_tooManyParams(t *testing.T) {
	_, err := parseSrc(t, "int f(int a, int b, int c, int d, int e, int f, int g, int h, int i) {}")
	require.Error(t, err)
}

func Test_Parser_declArray(t *testing.T) {
	prog, err := parseSrc(t, "int f() { int buf[4]; }")
	require.NoError(t, err)
	decl := prog.Funcs[0].Body.Stmts[0].(*DeclStmt)
	require.Equal(t, Type{Kind: KindArray, ArrayLen: 4}, decl.Type)
}

func Test_Parser_arrayOfPointerRejected(t *testing.T) {
	_, err := parseSrc(t, "int f() { int *p[4]; }")
	require.Error(t, err)
}

func Test_Parser_multiStarParamCollapsesToPointer(t *testing.T) {
	prog, err := parseSrc(t, "int f(int **p) { return 0; }")
	require.NoError(t, err)
	require.Equal(t, []Param{
		{Name: "p", Type: Type{Kind: KindPointer}},
	}, prog.Funcs[0].Params)
}

func Test_Parser_multiStarLocalCollapsesToPointer(t *testing.T) {
	prog, err := parseSrc(t, "int f() { int ***p; return 0; }")
	require.NoError(t, err)
	decl := prog.Funcs[0].Body.Stmts[0].(*DeclStmt)
	require.Equal(t, Type{Kind: KindPointer}, decl.Type)
	require.Equal(t, "p", decl.Name)
}

func Test_Parser_ifElse(t *testing.T) {
	prog, err := parseSrc(t, "int f() { if (1) return 1; else return 2; }")
	require.NoError(t, err)
	ifs := prog.Funcs[0].Body.Stmts[0].(*IfStmt)
	require.NotNil(t, ifs.Then)
	require.NotNil(t, ifs.Else)
}

func Test_Parser_whileAndFor(t *testing.T) {
	prog, err := parseSrc(t, `int f() {
		while (1) { }
		for (i = 0; i < 10; i = i + 1) { }
	}`)
	require.NoError(t, err)
	stmts := prog.Funcs[0].Body.Stmts
	require.IsType(t, &WhileStmt{}, stmts[0])
	forStmt := stmts[1].(*ForStmt)
	require.NotNil(t, forStmt.Init)
	require.NotNil(t, forStmt.Cond)
	require.NotNil(t, forStmt.Update)
}

func Test_Parser_forWithEmptyClauses(t *testing.T) {
	prog, err := parseSrc(t, "int f() { for (;;) { } }")
	require.NoError(t, err)
	forStmt := prog.Funcs[0].Body.Stmts[0].(*ForStmt)
	require.Nil(t, forStmt.Init)
	require.Nil(t, forStmt.Cond)
	require.Nil(t, forStmt.Update)
}

func Test_Parser_precedence(t *testing.T) {
	// 1 + 2 * 3 should parse as 1 + (2 * 3): the outer node is PLUS.
	prog, err := parseSrc(t, "int f() { return 1 + 2 * 3; }")
	require.NoError(t, err)
	ret := prog.Funcs[0].Body.Stmts[0].(*ReturnStmt)
	bin := ret.X.(*BinaryExpr)
	require.Equal(t, PLUS, bin.Op)
	rhs := bin.R.(*BinaryExpr)
	require.Equal(t, STAR, rhs.Op)
}

func Test_Parser_assignRightAssociative(t *testing.T) {
	prog, err := parseSrc(t, "int f() { a = b = 1; }")
	require.NoError(t, err)
	expr := prog.Funcs[0].Body.Stmts[0].(*ExprStmt).X.(*AssignExpr)
	require.Equal(t, "a", expr.Target.(*IdentExpr).Name)
	inner := expr.Value.(*AssignExpr)
	require.Equal(t, "b", inner.Target.(*IdentExpr).Name)
}

func Test_Parser_callAndIndexAndDeref(t *testing.T) {
	prog, err := parseSrc(t, "int f() { return *p[g(1, 2)]; }")
	require.NoError(t, err)
	ret := prog.Funcs[0].Body.Stmts[0].(*ReturnStmt)
	un := ret.X.(*UnaryExpr)
	require.Equal(t, STAR, un.Op)
	idx := un.X.(*IndexExpr)
	require.Equal(t, "p", idx.Base.(*IdentExpr).Name)
	call := idx.Index.(*CallExpr)
	require.Equal(t, "g", call.Name)
	require.Len(t, call.Args, 2)
}

func Test_Parser_unterminatedBlock(t *testing.T) {
	_, err := parseSrc(t, "int f() {")
	require.Error(t, err)
}

func Test_Parser_missingSemicolon(t *testing.T) {
	_, err := parseSrc(t, "int f() { return 1 }")
	require.Error(t, err)
}
