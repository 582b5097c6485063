package perm_test

import (
	"fmt"

	"github.com/matzehuels/tensorcanon/pkg/perm"
)

func ExampleGenerate() {
	// Generate all permutations of 3 elements
	perms := perm.Generate(3, -1)
	fmt.Println("All permutations of [0,1,2]:")
	for _, p := range perms {
		fmt.Println(p)
	}
	// Output:
	// All permutations of [0,1,2]:
	// [0 1 2]
	// [1 0 2]
	// [2 0 1]
	// [0 2 1]
	// [1 2 0]
	// [2 1 0]
}

func ExampleFactorial() {
	fmt.Println("4! =", perm.Factorial(4))
	fmt.Println("5! =", perm.Factorial(5))
	// Output:
	// 4! = 24
	// 5! = 120
}

func ExampleSeq() {
	// Create a sequence [0, 1, 2, ..., n-1]
	seq := perm.Seq(5)
	fmt.Println(seq)
	// Output:
	// [0 1 2 3 4]
}

func ExamplePerm_Compose() {
	// A sign-flipping swap composed with itself cancels both the
	// reordering and the sign.
	swap, _ := perm.New([]int{1, 0}, perm.Neg)
	fmt.Println("swap: ", swap)
	fmt.Println("twice:", swap.Compose(swap))
	// Output:
	// swap:  [1 0]·neg
	// twice: [0 1]
}

func ExampleFind() {
	// The permutation bringing [4 7 9] into the order [9 4 7].
	p := perm.Find([]int{4, 7, 9}, []int{9, 4, 7})
	fmt.Println(p)
	// Output:
	// [2 0 1]
}

func ExampleGroup_Elements() {
	// The antisymmetric pair group, generated by one sign-flipping swap.
	swap, _ := perm.New([]int{1, 0}, perm.Neg)
	g, _ := perm.NewGroup(2, []*perm.Perm{swap})
	for _, e := range g.Elements() {
		fmt.Println(e)
	}
	// Output:
	// [0 1]
	// [1 0]·neg
}
