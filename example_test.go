package bumparena_test

import (
	"errors"
	"fmt"

	"github.com/hupe1980/bumparena"
	"github.com/hupe1980/bumparena/vmem"
)

// Example demonstrates typed allocation from a dedicated arena.
func Example() {
	a := bumparena.New(bumparena.WithCapacity(64 << 10))

	type vec3 struct{ X, Y, Z float32 }

	v := bumparena.Alloc[vec3](a)
	v.X = 1

	vs := bumparena.AllocSlice[vec3](a, 4)
	vs[3].Z = 2

	fmt.Println(a.State(), a.Offset(), *v, vs[3])
	// Output: reserved 60 {1 0 0} {0 0 2}
}

// ExampleArena_Allocate demonstrates the raw interface and a non-terminating failure handler.
func ExampleArena_Allocate() {
	var failure error
	a := bumparena.New(
		bumparena.WithCapacity(4096),
		bumparena.WithReserver(vmem.Heap()),
		bumparena.WithFailureHandler(func(err *bumparena.AllocError) { failure = err }),
	)

	p := a.Allocate(4096, 1)
	q := a.Allocate(1, 1)

	fmt.Println(p != nil, q == nil, errors.Is(failure, bumparena.ErrCapacityExhausted))
	// Output: true true true
}

// ExampleParseCapacity demonstrates human-readable capacities.
func ExampleParseCapacity() {
	c, err := bumparena.ParseCapacity("512MB")
	if err != nil {
		panic(err)
	}

	a := bumparena.New(bumparena.WithCapacity(c), bumparena.WithName("scratch"))
	fmt.Println(a)
	// Output: Arena{name: "scratch", state: unreserved, capacity: 512 MiB, used: 0 B, usage: 0.0%, allocs: 0, failures: 0}
}
