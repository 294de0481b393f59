package random_test

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/dypro/random"
)

func ExampleNew() {
	demand, err := random.New([]int{1, 2, 3}, []float64{0.5, 0.25, 0.25})
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	var parts []string
	for d, p := range demand.All() {
		parts = append(parts, fmt.Sprintf("%d:%.2f", d, p))
	}
	fmt.Println(strings.Join(parts, " "))

	_, err = random.New([]int{1, 2}, []float64{0.75, 0.75})
	fmt.Println(errors.Is(err, random.ErrProbabilitySum))
	// Output:
	// 1:0.50 2:0.25 3:0.25
	// true
}
