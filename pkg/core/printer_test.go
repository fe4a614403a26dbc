package core

import (
	"math"
	"testing"

	"github.com/leapstack-labs/leaplisp/pkg/symbol"
	"github.com/stretchr/testify/assert"
)

func TestRepr(t *testing.T) {
	syms := symbol.NewTable()

	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{"integer", int64(42), "42"},
		{"negative integer", int64(-7), "-7"},
		{"float", 3.5, "3.5"},
		{"whole float keeps point", 2.0, "2.0"},
		{"large float", 1e21, "1e+21"},
		{"infinity", math.Inf(1), "inf"},
		{"string", "hi", `"hi"`},
		{"symbol", syms.Intern("foo"), "foo"},
		{"empty list", Nil(), "()"},
		{"nested list", List{int64(1), List{"a", syms.Intern("b")}}, `(1 ("a" b))`},
		{"builtin", &Builtin{Name: "car"}, "<builtin car>"},
		{"closure", &Closure{Params: []*symbol.Symbol{syms.Intern("a"), syms.Intern("b")}}, "<lambda (a b)>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Repr(tt.value))
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "hi", Display("hi"))
	assert.Equal(t, `("hi")`, Display(List{"hi"}), "strings nested in lists stay quoted")
	assert.Equal(t, "5", Display(int64(5)))
}
