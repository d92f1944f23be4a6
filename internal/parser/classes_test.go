package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClasses_Empty(t *testing.T) {
	r := Parse("class Empty {}", DialectJavaScript)

	require.Len(t, r.Classes, 1)
	c := r.Classes[0]
	assert.Equal(t, "Empty", c.Name)
	assert.Equal(t, []FunctionInfo{}, c.Methods)
	assert.Equal(t, []PropertyInfo{}, c.Properties)
	assert.Equal(t, []string{}, c.Implements)
	assert.Equal(t, c.LineStart, c.LineEnd)
}

func TestClasses_OneLineBody(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		dialect    Dialect
		methods    []string
		properties []string
	}{
		{
			name:    "single method",
			src:     "class A { foo() {} }",
			dialect: DialectJavaScript,
			methods: []string{"foo"},
		},
		{
			name:       "field and arrow field",
			src:        "class B { count = 0; inc = () => { this.count++; }; }",
			dialect:    DialectJavaScript,
			methods:    []string{"inc"},
			properties: []string{"count"},
		},
		{
			name:       "typed members",
			src:        "class P { private x: number = 1; static make(): P { return new P(); } }",
			dialect:    DialectTypeScript,
			methods:    []string{"make"},
			properties: []string{"x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Parse(tt.src, tt.dialect)
			require.Len(t, r.Classes, 1)
			c := r.Classes[0]

			methods := []string{}
			for _, m := range c.Methods {
				methods = append(methods, m.Name)
				assert.Equal(t, 1, m.LineStart)
				assert.Equal(t, 1, m.LineEnd)
			}
			properties := []string{}
			for _, p := range c.Properties {
				properties = append(properties, p.Name)
			}
			if tt.properties == nil {
				tt.properties = []string{}
			}
			assert.Equal(t, tt.methods, methods)
			assert.Equal(t, tt.properties, properties)
			assert.Empty(t, r.Functions)
		})
	}

	r := Parse("class P { private x: number = 1; static make(): P { return new P(); } }", DialectTypeScript)
	factory := r.Classes[0].Methods[0]
	assert.True(t, factory.Static)
	assert.Equal(t, "P", factory.ReturnType)
	x := r.Classes[0].Properties[0]
	assert.Equal(t, VisibilityPrivate, x.Visibility)
	assert.Equal(t, "number", x.Type)
	assert.Equal(t, "1", x.DefaultValue)
}

func TestClasses_TypedMembers(t *testing.T) {
	src := `/** Stores users. */
@Injectable()
export abstract class UserStore extends Base<User> implements Store, Disposable {
  private static readonly limit: number = 10;
  public name?: string;
  #secret = "x";

  constructor(private readonly db: Database) {
    super();
  }

  async find(id: string): Promise<User | undefined> {
    if (!id) {
      return undefined;
    }
    return this.db.get(id);
  }

  protected static create(): UserStore {
    return null;
  }

  abstract dispose(): void;

  get size(): number {
    return 0;
  }

  handle = (e: Event): void => {
    console.log(e);
  };
}`
	r := Parse(src, DialectTypeScript)

	require.Len(t, r.Classes, 1)
	c := r.Classes[0]
	assert.Equal(t, "UserStore", c.Name)
	assert.Equal(t, "Base", c.Superclass)
	assert.Equal(t, []string{"Store", "Disposable"}, c.Implements)
	assert.True(t, c.Abstract)
	assert.Equal(t, []string{"Injectable"}, c.Decorators)
	assert.Equal(t, "Stores users.", c.Docstring)
	assert.Equal(t, 3, c.LineStart)
	assert.Equal(t, 32, c.LineEnd)

	require.Len(t, c.Properties, 3)
	assert.Equal(t, PropertyInfo{
		Name: "limit", Type: "number", Visibility: VisibilityPrivate, Static: true, Readonly: true,
		DefaultValue: "10", Line: 4,
	}, c.Properties[0])
	assert.Equal(t, PropertyInfo{Name: "name", Type: "string", Visibility: VisibilityPublic, Optional: true, Line: 5}, c.Properties[1])
	assert.Equal(t, "#secret", c.Properties[2].Name)
	assert.Equal(t, VisibilityPrivate, c.Properties[2].Visibility)
	assert.Equal(t, `"x"`, c.Properties[2].DefaultValue)

	names := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"constructor", "find", "create", "dispose", "size", "handle"}, names)

	ctor := c.Methods[0]
	assert.Equal(t, FunctionConstructor, ctor.Kind)
	assert.Equal(t, []Parameter{{Name: "db", Type: "Database"}}, ctor.Parameters)
	assert.Equal(t, 8, ctor.LineStart)
	assert.Equal(t, 10, ctor.LineEnd)

	find := c.Methods[1]
	assert.True(t, find.Async)
	assert.Equal(t, "Promise<User | undefined>", find.ReturnType)
	assert.Equal(t, 12, find.LineStart)
	assert.Equal(t, 17, find.LineEnd)
	assert.Equal(t, 2, find.Complexity)

	create := c.Methods[2]
	assert.True(t, create.Static)
	assert.Equal(t, VisibilityProtected, create.Visibility)
	assert.Equal(t, "UserStore", create.ReturnType)

	dispose := c.Methods[3]
	assert.Equal(t, 23, dispose.LineStart)
	assert.Equal(t, 23, dispose.LineEnd)

	assert.Equal(t, FunctionGetter, c.Methods[4].Kind)

	handle := c.Methods[5]
	assert.Equal(t, FunctionArrow, handle.Kind)
	assert.Equal(t, "void", handle.ReturnType)
	assert.Equal(t, 29, handle.LineStart)
	assert.Equal(t, 31, handle.LineEnd)

	// methods stay out of the file-level function list
	assert.Empty(t, r.Functions)
}

func TestClasses_JavaScriptIgnoresTypes(t *testing.T) {
	src := `class Counter extends React.Component {
  state = { count: 0 };
  static defaultProps = {
    step: 1,
  };
  #tick() {
    return 1;
  }
  render() {
    return null;
  }
}`
	r := Parse(src, DialectJavaScript)

	require.Len(t, r.Classes, 1)
	c := r.Classes[0]
	assert.Equal(t, "React.Component", c.Superclass)
	require.Len(t, c.Properties, 2)
	assert.Equal(t, "state", c.Properties[0].Name)
	assert.Equal(t, "{ count: 0 }", c.Properties[0].DefaultValue)
	assert.True(t, c.Properties[1].Static)
	require.Len(t, c.Methods, 2)
	assert.Equal(t, "#tick", c.Methods[0].Name)
	assert.Equal(t, VisibilityPrivate, c.Methods[0].Visibility)
	assert.Equal(t, "render", c.Methods[1].Name)
	assert.Equal(t, 9, c.Methods[1].LineStart)
	assert.Equal(t, 11, c.Methods[1].LineEnd)
}

func TestInterfaces(t *testing.T) {
	src := `// Shape of a user.
export interface User extends Entity, Named<string> {
  readonly id: string;
  email?: string;
  tags: string[];
  [key: string]: unknown;
  greet(name: string): string;
  reset?(): void;
}
interface Point { x: number; y: number }`
	r := Parse(src, DialectTypeScript)

	require.Len(t, r.Interfaces, 2)
	user := r.Interfaces[0]
	assert.Equal(t, "User", user.Name)
	assert.True(t, user.Exported)
	assert.Equal(t, []string{"Entity", "Named<string>"}, user.Extends)
	assert.Equal(t, "Shape of a user.", user.Docstring)
	assert.Equal(t, 2, user.LineStart)
	assert.Equal(t, 9, user.LineEnd)
	assert.Equal(t, []MemberInfo{
		{Name: "id", Type: "string", Readonly: true, Line: 3},
		{Name: "email", Type: "string", Optional: true, Line: 4},
		{Name: "tags", Type: "string[]", Line: 5},
		{Name: "[key: string]", Type: "unknown", Line: 6},
	}, user.Properties)
	require.Len(t, user.Methods, 2)
	assert.Equal(t, "greet", user.Methods[0].Name)
	assert.Equal(t, []Parameter{{Name: "name", Type: "string"}}, user.Methods[0].Parameters)
	assert.Equal(t, "string", user.Methods[0].ReturnType)
	assert.True(t, user.Methods[1].Optional)

	point := r.Interfaces[1]
	assert.Equal(t, point.LineStart, point.LineEnd)
	assert.Equal(t, []MemberInfo{{Name: "x", Type: "number", Line: 10}, {Name: "y", Type: "number", Line: 10}}, point.Properties)
}

func TestTypeAliases(t *testing.T) {
	src := `export type Id = string | number;
type Status =
  | "active"
  | "disabled";
type Props = {
  label: string;
  onClick?: () => void;
};
type Handler = (
  event: Event,
) => void;
const after = 1;`
	r := Parse(src, DialectTypeScript)

	require.Len(t, r.TypeAliases, 4)

	id := r.TypeAliases[0]
	assert.Equal(t, "Id", id.Name)
	assert.True(t, id.Exported)
	assert.Equal(t, "string | number", id.Definition)
	assert.Equal(t, 1, id.LineEnd)

	status := r.TypeAliases[1]
	assert.Equal(t, `| "active" | "disabled"`, status.Definition)
	assert.Equal(t, 2, status.LineStart)
	assert.Equal(t, 4, status.LineEnd)

	props := r.TypeAliases[2]
	assert.Equal(t, 5, props.LineStart)
	assert.Equal(t, 8, props.LineEnd)
	assert.Equal(t, []MemberInfo{
		{Name: "label", Type: "string", Line: 6},
		{Name: "onClick", Type: "() => void", Optional: true, Line: 7},
	}, props.Properties)

	handler := r.TypeAliases[3]
	assert.Equal(t, 9, handler.LineStart)
	assert.Equal(t, 11, handler.LineEnd)
	assert.Equal(t, "( event: Event, ) => void", handler.Definition)
}

func TestTypesOnlyInTypeScript(t *testing.T) {
	src := "interface A { x: number }\ntype B = string;"
	r := Parse(src, DialectJavaScript)
	assert.Empty(t, r.Interfaces)
	assert.Empty(t, r.TypeAliases)
}
