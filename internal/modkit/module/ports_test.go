package module

import (
	"strings"
	"testing"

	phttp "donormatch/internal/platform/net/http"
)

// FooPort is a sample port interface modules might expose
type FooPort interface {
	Foo() string
}

type fooImpl struct{ v string }

func (f fooImpl) Foo() string { return f.v }

// fakeModule is a minimal Module double for port discovery tests
type fakeModule struct {
	name  string
	ports any
}

func (m fakeModule) MountRoutes(phttp.Router) {}
func (m fakeModule) Ports() any               { return m.ports }
func (m fakeModule) Name() string             { return m.name }

func TestPortsOfNilPorts(t *testing.T) {
	m := fakeModule{name: "empty", ports: nil}

	_, ok := PortsOf[FooPort](m)
	if ok {
		t.Fatal("expected ok=false for nil ports")
	}
}

func TestPortsOfDirectMatch(t *testing.T) {
	m := fakeModule{name: "direct", ports: fooImpl{v: "hi"}}

	got, ok := PortsOf[FooPort](m)
	if !ok {
		t.Fatal("expected direct interface match")
	}
	if got.Foo() != "hi" {
		t.Fatalf("unexpected value %q", got.Foo())
	}
}

func TestPortsOfStructBundleExportedField(t *testing.T) {
	type bundle struct {
		Foo FooPort
		Bar int
	}
	m := fakeModule{name: "bundle", ports: bundle{Foo: fooImpl{v: "field"}, Bar: 7}}

	got, ok := PortsOf[FooPort](m)
	if !ok {
		t.Fatal("expected match via exported struct field")
	}
	if got.Foo() != "field" {
		t.Fatalf("unexpected value %q", got.Foo())
	}
}

func TestPortsOfStructBundleUnexportedIgnored(t *testing.T) {
	type bundle struct {
		foo FooPort
	}
	m := fakeModule{name: "hidden", ports: bundle{foo: fooImpl{v: "nope"}}}

	_, ok := PortsOf[FooPort](m)
	if ok {
		t.Fatal("expected unexported field to be ignored")
	}
}

func TestMustPortsOfReturnsValue(t *testing.T) {
	m := fakeModule{name: "direct", ports: fooImpl{v: "must"}}

	got := MustPortsOf[FooPort](m)
	if got.Foo() != "must" {
		t.Fatalf("unexpected value %q", got.Foo())
	}
}

func TestMustPortsOfPanicsWithModuleName(t *testing.T) {
	m := fakeModule{name: "resolve", ports: nil}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for missing port")
		}
		msg, ok := r.(string)
		if !ok {
			t.Fatalf("expected string panic, got %T", r)
		}
		if !strings.Contains(msg, "requested port not found") {
			t.Fatalf("panic message missing reason: %q", msg)
		}
		if !strings.Contains(msg, "resolve") {
			t.Fatalf("panic message missing module name: %q", msg)
		}
	}()
	_ = MustPortsOf[FooPort](m)
}
