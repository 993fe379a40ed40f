package quotation

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/prima-crm/prima-crm/internal/masterdata"
	"github.com/prima-crm/prima-crm/internal/platform/httpx"
)

// mutatorDeps carries the collaborators step validation needs.
type mutatorDeps struct {
	lookups  masterdata.Lookups
	validate *validator.Validate
}

// stepMutator validates and applies one step's payload. Mutators never touch
// the step pointer; advancing it is the progression controller's job.
type stepMutator struct {
	decode   func(raw []byte) (any, error)
	validate func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error
	apply    func(ctx context.Context, repo Repository, q *Quotation, payload any) error
}

func decodeInto[T any](raw []byte) (any, error) {
	var p T
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("%w: malformed payload: %v", httpx.ErrValidation, err)
	}
	return &p, nil
}

// mutators is the dispatch table replacing the runtime method lookup of the
// previous incarnation: step number in, handler out, no reflection.
var mutators = map[int]stepMutator{
	1: {
		decode: decodeInto[Step1Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			return checkStruct(deps.validate, payload)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step1Payload)
			return repo.UpdateHeader(ctx, q.ID, map[string]any{
				"jenis_kontrak":   p.JenisKontrak,
				"top":             p.Top,
				"kebutuhan":       p.Kebutuhan,
				"nama_perusahaan": p.NamaPerusahaan,
			})
		},
	},
	2: {
		decode: decodeInto[Step2Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			return checkStruct(deps.validate, payload)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step2Payload)
			sites := make([]Site, len(p.Sites))
			for i, sp := range p.Sites {
				sites[i] = Site{
					QuotationID: q.ID,
					NamaSite:    sp.NamaSite,
					Provinsi:    sp.Provinsi,
					Kota:        sp.Kota,
					UmkID:       sp.UmkID,
				}
			}
			return repo.ReplaceSites(ctx, q.ID, sites)
		},
	},
	3: {
		decode: decodeInto[Step3Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			p := payload.(*Step3Payload)
			if err := checkStruct(deps.validate, p); err != nil {
				return err
			}
			siteIDs := make([]int64, len(p.Headcount))
			positionIDs := make([]int64, len(p.Headcount))
			for i, hc := range p.Headcount {
				siteIDs[i] = hc.QuotationSiteID
				positionIDs[i] = hc.PositionID
			}
			if err := checkSiteIDs("headcount.quotation_site_id", q, siteIDs); err != nil {
				return err
			}
			return checkMasterIDs(ctx, "headcount.position_id", positionIDs, deps.lookups.MissingPositions)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step3Payload)
			siteNames := make(map[int64]string, len(q.Sites))
			for _, s := range q.Sites {
				siteNames[s.ID] = s.NamaSite
			}
			entries := make([]HeadcountEntry, len(p.Headcount))
			for i, hc := range p.Headcount {
				entries[i] = HeadcountEntry{
					QuotationSiteID:  hc.QuotationSiteID,
					PositionID:       hc.PositionID,
					JumlahHC:         hc.JumlahHC,
					JabatanKebutuhan: hc.JabatanKebutuhan,
					NamaSite:         siteNames[hc.QuotationSiteID],
				}
			}
			return repo.ReplaceHeadcount(ctx, q.ID, entries)
		},
	},
	4: {
		decode: decodeInto[Step4Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			p := payload.(*Step4Payload)
			if err := checkStruct(deps.validate, p); err != nil {
				return err
			}
			ok, err := deps.lookups.SalaryRuleExists(ctx, p.SalaryRuleID)
			if err != nil {
				return err
			}
			if !ok {
				return httpx.NewFieldErrors(map[string]string{"salary_rule_id": "unknown salary rule"})
			}
			ok, err = deps.lookups.ManagementFeeExists(ctx, p.ManagementFeeID)
			if err != nil {
				return err
			}
			if !ok {
				return httpx.NewFieldErrors(map[string]string{"management_fee_id": "unknown management fee"})
			}
			return nil
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step4Payload)
			return repo.UpdateHeader(ctx, q.ID, map[string]any{
				"salary_rule_id":        p.SalaryRuleID,
				"management_fee_id":     p.ManagementFeeID,
				"persen_management_fee": p.PersenManagementFee,
			})
		},
	},
	5: {
		decode: decodeInto[Step5Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			p := payload.(*Step5Payload)
			if err := checkStruct(deps.validate, p); err != nil {
				return err
			}
			return checkMasterIDs(ctx, "trainings", p.Trainings, deps.lookups.MissingTrainings)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step5Payload)
			return repo.ReplaceTrainings(ctx, q.ID, p.Trainings, p.CatatanTraining)
		},
	},
	6: {
		decode: decodeInto[Step6Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			return checkStruct(deps.validate, payload)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step6Payload)
			return repo.UpsertVisitInfo(ctx, q.ID, TrainingSelection{
				QuotationID:                    q.ID,
				JumlahKunjunganOperasional:     p.JumlahKunjunganOperasional,
				BulanTahunKunjunganOperasional: p.BulanTahunKunjunganOperasional,
				KeteranganKunjunganOperasional: p.KeteranganKunjunganOperasional,
				JumlahKunjunganTimCrm:          p.JumlahKunjunganTimCrm,
				BulanTahunKunjunganTimCrm:      p.BulanTahunKunjunganTimCrm,
				KeteranganKunjunganTimCrm:      p.KeteranganKunjunganTimCrm,
				PersenBungaBank:                p.PersenBungaBank,
			})
		},
	},
	7: {
		decode:   decodeInto[Step7Payload],
		validate: validateKaporlap,
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step7Payload)
			return repo.ReplaceLineItems(ctx, q.ID, ItemKaporlap, toLineItems(q.ID, ItemKaporlap, p.Kaporlaps))
		},
	},
	8: {
		decode: decodeInto[Step8Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			p := payload.(*Step8Payload)
			return validateItems(ctx, deps, p, "devices", p.Devices)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step8Payload)
			return repo.ReplaceLineItems(ctx, q.ID, ItemDevice, toLineItems(q.ID, ItemDevice, p.Devices))
		},
	},
	9: {
		decode: decodeInto[Step9Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			p := payload.(*Step9Payload)
			return validateItems(ctx, deps, p, "chemicals", p.Chemicals)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step9Payload)
			return repo.ReplaceLineItems(ctx, q.ID, ItemChemical, toLineItems(q.ID, ItemChemical, p.Chemicals))
		},
	},
	10: {
		decode: decodeInto[Step10Payload],
		validate: func(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
			p := payload.(*Step10Payload)
			return validateItems(ctx, deps, p, "ohcs", p.Ohcs)
		},
		apply: func(ctx context.Context, repo Repository, q *Quotation, payload any) error {
			p := payload.(*Step10Payload)
			return repo.ReplaceLineItems(ctx, q.ID, ItemOhc, toLineItems(q.ID, ItemOhc, p.Ohcs))
		},
	},
	11: {
		decode:   decodeInto[Step11Payload],
		validate: validateHargaJual,
		apply:    applyHargaJual,
	},
}

func toLineItems(quotationID int64, kind ItemKind, payloads []ItemPayload) []LineItem {
	items := make([]LineItem, len(payloads))
	for i, ip := range payloads {
		items[i] = LineItem{
			QuotationID:       quotationID,
			Kind:              kind,
			QuotationDetailID: ip.QuotationDetailID,
			BarangID:          ip.BarangID,
			Jumlah:            ip.Jumlah,
			Harga:             ip.Harga,
			MasaPakai:         ip.MasaPakai,
		}
	}
	return items
}

func validateItems(ctx context.Context, deps mutatorDeps, payload any, field string, items []ItemPayload) error {
	if err := checkStruct(deps.validate, payload); err != nil {
		return err
	}
	barangIDs := make([]int64, len(items))
	for i, it := range items {
		barangIDs[i] = it.BarangID
	}
	return checkMasterIDs(ctx, field+".barang_id", barangIDs, deps.lookups.MissingBarang)
}

// validateKaporlap additionally requires each row to reference one of the
// quotation's detail lines.
func validateKaporlap(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
	p := payload.(*Step7Payload)
	if err := validateItems(ctx, deps, p, "kaporlaps", p.Kaporlaps); err != nil {
		return err
	}
	detailIDs := make([]int64, 0, len(p.Kaporlaps))
	for i, it := range p.Kaporlaps {
		if it.QuotationDetailID == nil {
			return httpx.NewFieldErrors(map[string]string{
				fmt.Sprintf("kaporlaps[%d].quotation_detail_id", i): "field is required",
			})
		}
		detailIDs = append(detailIDs, *it.QuotationDetailID)
	}
	return checkDetailIDs("kaporlaps.quotation_detail_id", q, detailIDs)
}

func validateHargaJual(ctx context.Context, deps mutatorDeps, q *Quotation, payload any) error {
	p := payload.(*Step11Payload)
	if err := checkStruct(deps.validate, p); err != nil {
		return err
	}
	var detailIDs []int64
	for id := range p.HppData {
		detailIDs = append(detailIDs, id)
	}
	for id := range p.CossData {
		detailIDs = append(detailIDs, id)
	}
	for id := range p.TunjanganData {
		detailIDs = append(detailIDs, id)
	}
	return checkDetailIDs("quotation_detail_id", q, dedupe(detailIDs))
}

// applyHargaJual merges pricing maps per detail id. Detail ids absent from
// the payload are left untouched; only the tunjangan list of a submitted key
// is replaced wholesale.
func applyHargaJual(ctx context.Context, repo Repository, q *Quotation, payload any) error {
	p := payload.(*Step11Payload)

	header := map[string]any{}
	if p.Penagihan != "" {
		header["penagihan"] = p.Penagihan
	}
	if p.PersenInsentif != nil {
		header["persen_insentif"] = *p.PersenInsentif
	}
	if len(header) > 0 {
		if err := repo.UpdateHeader(ctx, q.ID, header); err != nil {
			return err
		}
	}

	for detailID, hpp := range p.HppData {
		if err := repo.UpsertHpp(ctx, detailID, hpp); err != nil {
			return err
		}
	}
	for detailID, coss := range p.CossData {
		if err := repo.UpsertCoss(ctx, detailID, coss); err != nil {
			return err
		}
	}
	for detailID, list := range p.TunjanganData {
		entries := make([]TunjanganEntry, len(list))
		for i, tp := range list {
			entries[i] = TunjanganEntry{
				QuotationDetailID: detailID,
				NamaTunjangan:     tp.NamaTunjangan,
				Nominal:           tp.Nominal,
			}
		}
		if err := repo.ReplaceTunjangan(ctx, detailID, entries); err != nil {
			return err
		}
	}
	return nil
}
