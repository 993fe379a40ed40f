package quotation

// Relation names a child collection that must be loaded before a step
// view-model can be built.
type Relation string

const (
	RelSites     Relation = "sites"
	RelDetails   Relation = "details"
	RelHeadcount Relation = "headcount"
	RelKaporlap  Relation = "kaporlap"
	RelDevices   Relation = "devices"
	RelChemical  Relation = "chemical"
	RelOhc       Relation = "ohc"
	RelTraining  Relation = "training"
	RelTunjangan Relation = "tunjangan"
)

// StepView is the projection of a quotation restricted to one step's fields.
type StepView map[string]any

// stepDef describes one wizard step: what to eager-load and how to project
// the aggregate into the step's view-model. Adding a step is a single
// registration in the steps table below.
type stepDef struct {
	relations []Relation
	project   func(q *Quotation) StepView
}

var steps = map[int]stepDef{
	1: {
		project: func(q *Quotation) StepView {
			return StepView{
				"jenis_kontrak":   q.JenisKontrak,
				"top":             q.Top,
				"kebutuhan":       q.Kebutuhan,
				"nama_perusahaan": q.NamaPerusahaan,
			}
		},
	},
	2: {
		relations: []Relation{RelSites},
		project: func(q *Quotation) StepView {
			return StepView{"sites": emptyAsList(q.Sites)}
		},
	},
	3: {
		relations: []Relation{RelSites, RelHeadcount},
		project: func(q *Quotation) StepView {
			return StepView{"headcount": emptyAsList(q.Headcount)}
		},
	},
	4: {
		project: func(q *Quotation) StepView {
			return StepView{
				"salary_rule_id":        q.SalaryRuleID,
				"management_fee_id":     q.ManagementFeeID,
				"persen_management_fee": q.PersenManagementFee,
			}
		},
	},
	5: {
		relations: []Relation{RelTraining},
		project: func(q *Quotation) StepView {
			view := StepView{"trainings": []int64{}, "catatan_training": ""}
			if q.Training != nil {
				view["trainings"] = q.Training.TrainingIDs
				view["catatan_training"] = q.Training.CatatanTraining
			}
			return view
		},
	},
	6: {
		relations: []Relation{RelTraining},
		project: func(q *Quotation) StepView {
			sel := q.Training
			if sel == nil {
				sel = &TrainingSelection{}
			}
			return StepView{
				"jumlah_kunjungan_operasional":      sel.JumlahKunjunganOperasional,
				"bulan_tahun_kunjungan_operasional": sel.BulanTahunKunjunganOperasional,
				"keterangan_kunjungan_operasional":  sel.KeteranganKunjunganOperasional,
				"jumlah_kunjungan_tim_crm":          sel.JumlahKunjunganTimCrm,
				"bulan_tahun_kunjungan_tim_crm":     sel.BulanTahunKunjunganTimCrm,
				"keterangan_kunjungan_tim_crm":      sel.KeteranganKunjunganTimCrm,
				"persen_bunga_bank":                 sel.PersenBungaBank,
			}
		},
	},
	7: {
		relations: []Relation{RelDetails, RelKaporlap},
		project: func(q *Quotation) StepView {
			return StepView{"kaporlaps": emptyAsList(q.Kaporlap)}
		},
	},
	8: {
		relations: []Relation{RelDevices},
		project: func(q *Quotation) StepView {
			return StepView{"devices": emptyAsList(q.Devices)}
		},
	},
	9: {
		relations: []Relation{RelChemical},
		project: func(q *Quotation) StepView {
			return StepView{"chemicals": emptyAsList(q.Chemical)}
		},
	},
	10: {
		relations: []Relation{RelOhc},
		project: func(q *Quotation) StepView {
			return StepView{"ohcs": emptyAsList(q.Ohc)}
		},
	},
	11: {
		relations: []Relation{RelDetails, RelTunjangan},
		project:   projectHargaJual,
	},
}

func projectHargaJual(q *Quotation) StepView {
	hpp := map[int64]map[string]any{}
	coss := map[int64]map[string]any{}
	tunjangan := map[int64][]TunjanganEntry{}
	for _, d := range q.Details {
		if d.Thr != nil || d.Kompensasi != nil || d.PersenInsentif != nil {
			hpp[d.ID] = map[string]any{
				"thr":             deref(d.Thr),
				"kompensasi":      deref(d.Kompensasi),
				"persen_insentif": deref(d.PersenInsentif),
			}
		}
		if d.ProvisiSeragam != nil || d.ProvisiPeralatan != nil || d.ProvisiChemical != nil || d.ProvisiOhc != nil {
			coss[d.ID] = map[string]any{
				"provisi_seragam":   deref(d.ProvisiSeragam),
				"provisi_peralatan": deref(d.ProvisiPeralatan),
				"provisi_chemical":  deref(d.ProvisiChemical),
				"provisi_ohc":       deref(d.ProvisiOhc),
			}
		}
		if len(d.Tunjangan) > 0 {
			tunjangan[d.ID] = d.Tunjangan
		}
	}
	return StepView{
		"penagihan":       q.Penagihan,
		"persen_insentif": q.PersenInsentif,
		"hpp_data":        hpp,
		"coss_data":       coss,
		"tunjangan_data":  tunjangan,
	}
}

// adminPanelSteps is the subset reachable through /admin-panel.
var adminPanelSteps = map[int]bool{
	3: true, 7: true, 8: true, 9: true, 10: true, 11: true,
}

// StepRelations returns the relations a step needs, or ErrUnknownStep.
func StepRelations(step int) ([]Relation, error) {
	def, ok := steps[step]
	if !ok {
		return nil, ErrUnknownStep
	}
	return def.relations, nil
}

// ProjectStep builds the view-model for a step. The quotation id and the
// current step pointer ride along with every projection.
func ProjectStep(step int, q *Quotation) (StepView, error) {
	def, ok := steps[step]
	if !ok {
		return nil, ErrUnknownStep
	}
	view := def.project(q)
	view["id"] = q.ID
	view["step"] = q.Step
	return view, nil
}

func emptyAsList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
