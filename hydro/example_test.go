package hydro_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/dypro/hydro"
)

// ExampleSchedule_Plan schedules Ilha Solteira from August to October.
func ExampleSchedule_Plan() {
	cfg := hydro.DefaultConfig()
	cfg.StartMonth = 7
	cfg.Stages = 3
	cfg.StatePeriod = 2100
	cfg.DecisionPeriod = 1000

	s, err := hydro.NewSchedule(cfg)
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	res, err := s.Plan(context.Background())
	if err != nil {
		fmt.Println("error:", err)

		return
	}
	fmt.Printf("cost: %.2f\n", res.Cost)
	fmt.Println("volumes:", res.States)
	fmt.Println("releases:", res.Decisions)
	// Output:
	// cost: 686.86
	// volumes: [14900 17000 19100 17000]
	// releases: [1400 1400 3400]
}

func ExamplePlant_Output() {
	p := hydro.IlhaSolteira()
	fmt.Printf("%.1f MW\n", p.Output(15000, 5000))
	fmt.Printf("%.1f MW\n", p.Output(21200, 9000))
	// Output:
	// 1824.3 MW
	// 3230.0 MW
}
