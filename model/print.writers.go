package model

import (
	"fmt"
	"log"

	"github.com/maseology/mmio"
)

// WriteHydrograph writes the outlet series (and observations when
// present) to a csv.
func (r *Results) WriteHydrograph(fp string) {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead("date,obs,sim,simspec"); err != nil {
		log.Fatalf("%v", err)
	}
	for k, t := range r.T {
		o := -9999.
		if r.obs != nil {
			o = r.obs[k]
		}
		csvw.WriteLine(t, o, r.Qout[k], r.Qspec[k])
	}
}

// WriteMonitors writes one csv of flux and storage series per unit
// (<dir><unit>.mon) plus the specific-discharge series.
func (r *Results) WriteMonitors(dir string) {
	mmio.MakeDir(dir)
	for i := range r.Qbf {
		csvw := mmio.NewCSVwriter(fmt.Sprintf("%s%d.mon", dir, i))
		if err := csvw.WriteHead("qbf,qin,uz,rain,ae,ex,qof,srz,suz,sd,exs"); err != nil {
			log.Fatalf("%v", err)
		}
		for k := range r.T {
			csvw.WriteLine(r.Qbf[i][k], r.Qin[i][k], r.Uz[i][k], r.Rain[i][k],
				r.Ae[i][k], r.Exf[i][k], r.Qof[i][k],
				r.Srz[i][k], r.Suz[i][k], r.Sd[i][k], r.Exs[i][k])
		}
		csvw.Close()
	}
	mmio.WriteFloats(dir+"qspec.mon", r.Qspec)
}
