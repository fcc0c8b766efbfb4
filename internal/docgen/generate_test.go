package docgen

import (
	"context"
	"os"
	"path"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc/v2"
	testlogr "github.com/go-logr/logr/testing"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
	"github.com/vvakame/gqldocgen/internal/log"
	"github.com/vvakame/gqldocgen/internal/operations"
	"github.com/vvakame/gqldocgen/internal/registry"
	"github.com/vvakame/gqldocgen/internal/schema"
	"github.com/vvakame/gqldocgen/internal/testutils"
)

func buildRegistry(t *testing.T, name, sdl string) *registry.Registry {
	t.Helper()

	schemaDoc, err := schema.Parse(&ast.Source{Name: name, Input: sdl})
	if err != nil {
		t.Fatal(err)
	}
	r, err := registry.Build(schemaDoc, schema.Scalars(schemaDoc))
	if err != nil {
		t.Fatal(err)
	}

	return r
}

func testContext(t *testing.T) context.Context {
	return log.WithLogger(context.Background(), testlogr.NewTestLogger(t))
}

func TestGenerate_golden(t *testing.T) {
	const testFileDir = "./_testdata/generate/assets"
	const expectFileDir = "./_testdata/generate/expected"

	files, err := os.ReadDir(testFileDir)
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".graphqls") {
			continue
		}

		t.Run(file.Name(), func(t *testing.T) {
			ctx := testContext(t)

			b, err := os.ReadFile(path.Join(testFileDir, file.Name()))
			if err != nil {
				t.Fatal(err)
			}
			source := string(b)

			r := buildRegistry(t, file.Name(), source)

			existing := operations.NewSet()
			for _, name := range testutils.FindOptionList(t, "skipQuery", source) {
				if err := existing.Add(ast.Query, name); err != nil {
					t.Fatal(err)
				}
			}

			text, err := Generate(
				ctx,
				r,
				WithRecursionLimit(testutils.FindOptionInt(t, "recursionLimit", source, DefaultRecursionLimit)),
				WithExistingOperations(existing),
			)
			if err != nil {
				t.Fatal(err)
			}

			name := strings.TrimSuffix(file.Name(), ".graphqls")
			testutils.CheckGoldenFile(t, []byte(text), path.Join(expectFileDir, name+".graphql"))
		})
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name string
		sdl  string
		opts []GenerateOption
		want string
	}{
		{
			name: "self reference is cut at the recursion limit",
			sdl: heredoc.Doc(`
				type Person { name: String parent: Person }
				type Query { person: Person }
			`),
			opts: []GenerateOption{WithRecursionLimit(2)},
			want: "query person { \n" +
				"  person {\n" +
				"    name\n" +
				"    parent {\n" +
				"      name\n" +
				"      parent {\n" +
				"        name\n" +
				"      }\n" +
				"    }\n" +
				"  }\n" +
				"}",
		},
		{
			name: "recursion limit zero",
			sdl: heredoc.Doc(`
				type Person { name: String parent: Person }
				type Query { person: Person }
			`),
			opts: []GenerateOption{WithRecursionLimit(0)},
			want: "query person { \n" +
				"  person {\n" +
				"    name\n" +
				"  }\n" +
				"}",
		},
		{
			name: "sibling branches count independently",
			sdl: heredoc.Doc(`
				type A { b1: B b2: B }
				type B { name: String a: A }
				type Query { a: A }
			`),
			opts: []GenerateOption{WithRecursionLimit(1)},
			want: heredoc.Doc(`
				query a { 
				  a {
				    b1 {
				      name
				      a {
				        b1 {
				          name
				        }
				        b2 {
				          name
				        }
				      }
				    }
				    b2 {
				      name
				      a {
				        b1 {
				          name
				        }
				        b2 {
				          name
				        }
				      }
				    }
				  }
				}`),
		},
		{
			name: "arguments become path qualified variables",
			sdl: heredoc.Doc(`
				type Query { user(id: ID!): User }
				type User {
					id: ID!
					avatar(size: Int): String
					post(id: ID!): Post
				}
				type Post {
					id: ID!
					tags(first: Int!): [String!]!
				}
			`),
			want: "query user($userId: ID!, $userAvatarSize: Int, $userPostId: ID!, $userPostTagsFirst: Int!) { \n" +
				"  user(id: $userId) {\n" +
				"    id\n" +
				"    avatar(size: $userAvatarSize)\n" +
				"    post(id: $userPostId) {\n" +
				"      id\n" +
				"      tags(first: $userPostTagsFirst)\n" +
				"    }\n" +
				"  }\n" +
				"}",
		},
		{
			name: "scalar root field with argument",
			sdl: heredoc.Doc(`
				type Query { hello(name: String!): String }
			`),
			want: "query hello($helloName: String!) { \n" +
				"  hello(name: $helloName)\n" +
				"}",
		},
		{
			name: "colliding variable names keep the first declaration",
			sdl: heredoc.Doc(`
				type Query { q(aB: Int): Q }
				type Q { a(b: String): String }
			`),
			want: "query q($qAB: Int) { \n" +
				"  q(aB: $qAB) {\n" +
				"    a(b: $qAB)\n" +
				"  }\n" +
				"}",
		},
		{
			name: "operation kinds are separated",
			sdl: heredoc.Doc(`
				type Query { a: String b(x: Int): String }
				type Mutation { c: String }
			`),
			want: "query a { \n  a\n}" +
				"\n\n" +
				"query b($bX: Int) { \n  b(x: $bX)\n}" +
				"\n\n\n" +
				"mutation c { \n  c\n}",
		},
		{
			name: "existing operations are skipped",
			sdl: heredoc.Doc(`
				type Query { a: String b(x: Int): String }
				type Mutation { c: String }
			`),
			opts: []GenerateOption{WithExistingOperations(existingSet(t, ast.Query, "a"))},
			want: "query b($bX: Int) { \n  b(x: $bX)\n}" +
				"\n\n\n" +
				"mutation c { \n  c\n}",
		},
		{
			name: "kind without eligible fields is omitted",
			sdl: heredoc.Doc(`
				type Query { a: String }
				type Mutation { c: String }
			`),
			opts: []GenerateOption{WithExistingOperations(existingSet(t, ast.Query, "a"))},
			want: "mutation c { \n  c\n}",
		},
		{
			name: "existing names only apply to their own kind",
			sdl: heredoc.Doc(`
				type Query { a: String }
				type Mutation { a: String }
			`),
			opts: []GenerateOption{WithExistingOperations(existingSet(t, ast.Mutation, "a"))},
			want: "query a { \n  a\n}",
		},
		{
			name: "fully pruned operation is dropped",
			sdl: heredoc.Doc(`
				type Loop { next: Loop }
				type Query { loop: Loop ok: String }
			`),
			opts: []GenerateOption{WithRecursionLimit(1)},
			want: "query ok { \n  ok\n}",
		},
		{
			name: "union and enum fields are leaves",
			sdl: heredoc.Doc(`
				enum Color { RED }
				type A { id: ID }
				union U = A
				type Query { color: Color u: U }
			`),
			want: "query color { \n  color\n}" +
				"\n\n" +
				"query u { \n  u\n}",
		},
		{
			name: "no root types",
			sdl: heredoc.Doc(`
				type A { id: ID }
			`),
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := buildRegistry(t, "schema.graphqls", tt.sdl)

			got, err := Generate(testContext(t), r, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if d := testutils.Diff(tt.want, got); d != "" {
				t.Error(d)
			}
		})
	}
}

func existingSet(t *testing.T, operation ast.Operation, names ...string) *operations.Set {
	t.Helper()

	set := operations.NewSet()
	for _, name := range names {
		if err := set.Add(operation, name); err != nil {
			t.Fatal(err)
		}
	}
	return set
}

func TestGenerate_interfaceViolation(t *testing.T) {
	r := buildRegistry(t, "schema.graphqls", heredoc.Doc(`
		interface Node { id: ID }
		type User implements Node { name: String }
		type Query { user: User }
	`))

	text, err := Generate(testContext(t), r)
	if err == nil {
		t.Fatal("error expected")
	}
	if text != "" {
		t.Errorf("no output expected, got %q", text)
	}
	if _, ok := err.(*gqlerror.Error); !ok {
		t.Errorf("unexpected error type %T", err)
	}
	for _, s := range []string{"id", "User"} {
		if !strings.Contains(err.Error(), s) {
			t.Errorf("%q doesn't contain %q", err.Error(), s)
		}
	}
}

func TestGenerate_negativeRecursionLimit(t *testing.T) {
	r := buildRegistry(t, "schema.graphqls", "type Query { a: String }")

	_, err := Generate(testContext(t), r, WithRecursionLimit(-1))
	if err == nil {
		t.Fatal("error expected")
	}
}

func TestGenerate_deterministic(t *testing.T) {
	b, err := os.ReadFile("./_testdata/generate/assets/blog.graphqls")
	if err != nil {
		t.Fatal(err)
	}

	var first string
	for i := 0; i < 5; i++ {
		r := buildRegistry(t, "blog.graphqls", string(b))
		text, err := Generate(testContext(t), r)
		if err != nil {
			t.Fatal(err)
		}
		if i == 0 {
			first = text
			continue
		}
		if d := testutils.Diff(first, text); d != "" {
			t.Fatalf("run %d differs:\n%s", i, d)
		}
	}
}

func TestBuildOperations_variablesAreUnique(t *testing.T) {
	r := buildRegistry(t, "schema.graphqls", heredoc.Doc(`
		type Query { user(id: ID!): User post(id: ID!): Post }
		type User { id: ID! post(id: ID!): Post }
		type Post { id: ID! author(id: ID): User }
	`))

	ops, err := BuildOperations(testContext(t), r, WithRecursionLimit(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(ops) != 2 {
		t.Fatalf("unexpected operations: %d", len(ops))
	}

	for _, op := range ops {
		declared := make(map[string]bool)
		for _, v := range op.Variables {
			if declared[v.Name] {
				t.Errorf("%s: variable %s declared twice", op.Name, v.Name)
			}
			declared[v.Name] = true
		}

		var walk func(sel *Selection)
		walk = func(sel *Selection) {
			for _, arg := range sel.Arguments {
				if !declared[arg.Variable] {
					t.Errorf("%s: variable %s is used but not declared", op.Name, arg.Variable)
				}
			}
			for _, child := range sel.Selections {
				walk(child)
			}
		}
		walk(op.Selection)
	}

	if ops[0].Variables[0].Name != "userId" || ops[1].Variables[0].Name != "postId" {
		t.Errorf("unexpected variables: %s, %s", ops[0].Variables[0].Name, ops[1].Variables[0].Name)
	}
	if ops[0].Variables[1].Name != "userPostId" {
		t.Errorf("unexpected variable: %s", ops[0].Variables[1].Name)
	}
}
