package quotation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectStepCarriesIDAndPointer(t *testing.T) {
	q := &Quotation{ID: 12, Step: 4, JenisKontrak: "Reguler"}

	view, err := ProjectStep(1, q)
	require.NoError(t, err)

	assert.Equal(t, int64(12), view["id"])
	assert.Equal(t, 4, view["step"])
	assert.Equal(t, "Reguler", view["jenis_kontrak"])
}

func TestProjectStepUnknownStep(t *testing.T) {
	_, err := ProjectStep(0, &Quotation{})
	assert.ErrorIs(t, err, ErrUnknownStep)

	_, err = StepRelations(12)
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestEveryStepHasAMutator(t *testing.T) {
	for step := range steps {
		_, ok := mutators[step]
		assert.True(t, ok, "step %d is missing a mutator", step)
	}
	for step := range mutators {
		_, ok := steps[step]
		assert.True(t, ok, "mutator %d has no step definition", step)
	}
}

func TestNextStepSequence(t *testing.T) {
	for step := 1; step <= 10; step++ {
		assert.Equal(t, step+1, nextStep(step))
	}
	assert.Equal(t, StepComplete, nextStep(11))
}

func TestListStepsProjectEmptyCollectionsAsLists(t *testing.T) {
	q := &Quotation{ID: 1}
	for _, step := range []int{2, 3, 7, 8, 9, 10} {
		view, err := ProjectStep(step, q)
		require.NoError(t, err)
		for key, val := range view {
			if key == "id" || key == "step" {
				continue
			}
			assert.NotNil(t, val, "step %d key %s", step, key)
		}
	}
}

func TestProjectHargaJualGroupsByDetail(t *testing.T) {
	thr := 150.0
	seragam := 20.0
	q := &Quotation{
		ID:        1,
		Penagihan: "Transfer",
		Details: []Detail{
			{ID: 10, Thr: &thr, Tunjangan: []TunjanganEntry{{NamaTunjangan: "Makan", Nominal: 10000}}},
			{ID: 11, ProvisiSeragam: &seragam},
			{ID: 12},
		},
	}

	view, err := ProjectStep(11, q)
	require.NoError(t, err)

	hpp := view["hpp_data"].(map[int64]map[string]any)
	require.Contains(t, hpp, int64(10))
	assert.Equal(t, 150.0, hpp[10]["thr"])
	assert.NotContains(t, hpp, int64(12), "details without pricing stay out of the maps")

	coss := view["coss_data"].(map[int64]map[string]any)
	require.Contains(t, coss, int64(11))

	tunjangan := view["tunjangan_data"].(map[int64][]TunjanganEntry)
	require.Contains(t, tunjangan, int64(10))
	assert.Equal(t, "Makan", tunjangan[10][0].NamaTunjangan)
}

func TestAdminPanelStepSet(t *testing.T) {
	assert.Equal(t, map[int]bool{3: true, 7: true, 8: true, 9: true, 10: true, 11: true}, adminPanelSteps)
	for step := range adminPanelSteps {
		_, ok := steps[step]
		assert.True(t, ok)
	}
}
