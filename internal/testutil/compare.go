package testutil

import (
	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/shadergrid/pkg/shader"
	"github.com/zclconf/go-cty/cty"
)

// AttrText compares cty values by their markup text, so that a number
// parsed back from text equals the value it was written from.
var AttrText = cmp.Comparer(func(a, b cty.Value) bool {
	sa, errA := shader.AttrText(a)
	sb, errB := shader.AttrText(b)
	return errA == nil && errB == nil && sa == sb
})
