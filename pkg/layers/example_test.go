package layers_test

import (
	"errors"
	"fmt"

	"github.com/matzehuels/stratum/pkg/layers"
)

func ExampleGraph_Solve() {
	g := layers.New()
	content, _ := g.AddLayer("content")
	modal, _ := g.AddLayer("modal")
	toast, _ := g.AddLayer("toast")

	modal.IsAbove(content)
	toast.IsAbove(modal)

	sol, _ := g.Solve()
	for _, name := range sol.Order() {
		fmt.Println(name, sol[name])
	}
	// Output:
	// content 1
	// modal 2
	// toast 3
}

func ExampleGraph_AddStaticLayer() {
	// A third-party widget hardcodes z-index 1000; keep our tooltip above it.
	g := layers.New()
	widget, _ := g.AddStaticLayer("widget", 1000)
	tooltip, _ := g.AddLayer("tooltip")
	tooltip.IsAbove(widget)

	sol, _ := g.Solve()
	fmt.Println("widget:", sol["widget"])
	fmt.Println("tooltip:", sol["tooltip"])
	// Output:
	// widget: 1000
	// tooltip: 1001
}

func ExampleCycleError() {
	g := layers.New()
	a, _ := g.AddLayer("a")
	b, _ := g.AddLayer("b")
	a.IsAbove(b)
	b.IsAbove(a)

	_, err := g.Solve()
	fmt.Println(errors.Is(err, layers.ErrCycle))
	fmt.Println(err)
	// Output:
	// true
	// cycle detected among layers: a, b
}
