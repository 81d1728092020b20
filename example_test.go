package treeclock_test

import (
	"fmt"

	"github.com/roach88/treeclock"
)

// Two replicas fork from a common seed, advance independently, and the
// resulting stamps are concurrent until a join reconciles them.
func Example() {
	seed := treeclock.NewSeed()
	s, _ := seed.Event()

	a, b := s.Fork()
	a, _ = a.Event()
	b, _ = b.Event()

	fmt.Println(a)
	fmt.Println(b)
	fmt.Println(a.Compare(b))

	merged, _ := a.Join(b)
	fmt.Println(merged)
	// Output:
	// {(1, 0); (1, 1, 0)}
	// {(0, 1); (1, 0, 1)}
	// concurrent
	// {1; 2}
}

func ExampleStamp_MarshalBinary() {
	raw, _ := treeclock.NewSeed().MarshalBinary()
	fmt.Printf("%x\n", raw)

	s, _ := treeclock.UnmarshalStamp(raw)
	fmt.Println(s)
	// Output:
	// 0160
	// {1; 0}
}
