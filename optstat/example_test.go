package optstat_test

import (
	"fmt"

	"github.com/cwbudde/algo-pta/noise"
	"github.com/cwbudde/algo-pta/optstat"
	"github.com/cwbudde/algo-pta/pta"
)

func ExampleOptimalStatistic_Compute() {
	toas := make([]float64, 64)
	for i := range toas {
		toas[i] = float64(i) * 1e8 / 64
	}
	psrs := []pta.Pulsar{
		{Name: "J1", TOAs: toas, Residuals: make([]float64, 64), Pos: [3]float64{1, 0, 0}},
		{Name: "J2", TOAs: toas, Residuals: make([]float64, 64), Pos: [3]float64{0, 1, 0}},
		{Name: "J3", TOAs: toas, Residuals: make([]float64, 64), Pos: [3]float64{0, 0, 1}},
	}

	model, _ := noise.NewArray(psrs, noise.ArrayConfig{NumFreqs: 4, Tspan: 1e8, Sigma: 1e-7})
	os, _ := optstat.New(model, optstat.WithORF("hd"))

	res, _ := os.Compute(pta.ParamSet{
		"J1_efac": 1, "J2_efac": 1, "J3_efac": 1,
		"gw_log10_A": -14, "gw_gamma": 13.0 / 3.0,
	})

	fmt.Printf("pairs=%d snr-derived=%t\n", len(res.Rho), res.SNR() == res.OS/res.OSSigma)

	// Output:
	// pairs=3 snr-derived=true
}
