package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prima-crm/prima-crm/internal/quotation"
)

func TestResolveApprover(t *testing.T) {
	assert.Equal(t, ApproverTier1, ResolveApprover(24))
	assert.Equal(t, ApproverTier2, ResolveApprover(25))
	assert.Equal(t, ApproverTier2, ResolveApprover(28))
	assert.Equal(t, ApproverTier3, ResolveApprover(23))
	assert.Equal(t, ApproverNone, ResolveApprover(29))
	assert.Equal(t, ApproverNone, ResolveApprover(0))
}

func TestParseTipe(t *testing.T) {
	for _, raw := range []string{"", "menunggu-anda", "menunggu-approval", "quotation-belum-lengkap"} {
		tipe, err := ParseTipe(raw)
		require.NoError(t, err)
		assert.Equal(t, Tipe(raw), tipe)
	}

	_, err := ParseTipe("semua")
	assert.Error(t, err)
}

func TestBucketSQLDefaultTipe(t *testing.T) {
	cond, args, next := BucketSQL(TipeNone, ApproverTier1, 1)

	assert.Equal(t, "q.status_quotation_id = 2", cond)
	assert.Empty(t, args)
	assert.Equal(t, 1, next)
}

func TestBucketSQLMenungguApproval(t *testing.T) {
	cond, args, _ := BucketSQL(TipeMenungguApproval, ApproverNone, 1)

	assert.Equal(t, "q.status_quotation_id = 2 AND q.step = 100", cond)
	assert.Empty(t, args, "the approval queue is not role-specific")
}

func TestBucketSQLBelumLengkap(t *testing.T) {
	cond, _, _ := BucketSQL(TipeBelumLengkap, ApproverNone, 1)
	assert.Equal(t, "q.step <> 100", cond)
}

func TestBucketSQLMenungguAndaTier1(t *testing.T) {
	cond, args, next := BucketSQL(TipeMenungguAnda, ApproverTier1, 1)

	assert.Contains(t, cond, "q.ot1 IS NULL")
	assert.NotContains(t, cond, "q.top", "tier 1 is not gated on payment terms")
	assert.Empty(t, args)
	assert.Equal(t, 1, next)
}

func TestBucketSQLMenungguAndaTier2(t *testing.T) {
	cond, args, next := BucketSQL(TipeMenungguAnda, ApproverTier2, 3)

	assert.Contains(t, cond, "q.ot2 IS NULL")
	assert.Contains(t, cond, "q.top = $3")
	assert.Equal(t, []any{quotation.TopLongTerm}, args)
	assert.Equal(t, 4, next)
}

func TestBucketSQLMenungguAndaTier3(t *testing.T) {
	cond, args, _ := BucketSQL(TipeMenungguAnda, ApproverTier3, 1)

	assert.Contains(t, cond, "q.ot1 IS NOT NULL")
	assert.Contains(t, cond, "q.ot2 IS NOT NULL")
	assert.Contains(t, cond, "q.ot3 IS NULL")
	assert.Contains(t, cond, "q.top = $1")
	assert.Equal(t, []any{quotation.TopLongTerm}, args)
}

func TestBucketSQLMenungguAndaNonApprover(t *testing.T) {
	cond, args, _ := BucketSQL(TipeMenungguAnda, ApproverNone, 1)

	assert.Equal(t, "1 = 0", cond, "roles without approval authority see nothing")
	assert.Empty(t, args)
}

func TestBucketSQLMenungguAndaRequiresSubmitted(t *testing.T) {
	for _, tier := range []ApproverTier{ApproverTier1, ApproverTier2, ApproverTier3} {
		cond, _, _ := BucketSQL(TipeMenungguAnda, tier, 1)
		assert.True(t, strings.HasPrefix(cond, "q.status_quotation_id = 2 AND q.step = 100"), cond)
	}
}

func submittedQuotation() *quotation.Quotation {
	return &quotation.Quotation{
		ID:                1,
		Step:              quotation.StepComplete,
		StatusQuotationID: quotation.StatusSubmitted,
		Top:               quotation.TopLongTerm,
	}
}

func TestNextSlotSequentialOrder(t *testing.T) {
	q := submittedQuotation()

	slot, err := NextSlot(ApproverTier1, q)
	require.NoError(t, err)
	assert.Equal(t, 1, slot)

	// tier 2 and 3 must wait for the earlier markers.
	_, err = NextSlot(ApproverTier2, q)
	assert.ErrorIs(t, err, ErrNotEligible)
	_, err = NextSlot(ApproverTier3, q)
	assert.ErrorIs(t, err, ErrNotEligible)

	now := time.Now()
	q.Ot1 = &now
	slot, err = NextSlot(ApproverTier2, q)
	require.NoError(t, err)
	assert.Equal(t, 2, slot)

	_, err = NextSlot(ApproverTier3, q)
	assert.ErrorIs(t, err, ErrNotEligible)

	q.Ot2 = &now
	slot, err = NextSlot(ApproverTier3, q)
	require.NoError(t, err)
	assert.Equal(t, 3, slot)

	q.Ot3 = &now
	_, err = NextSlot(ApproverTier3, q)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestNextSlotShortTermSkipsUpperTiers(t *testing.T) {
	now := time.Now()
	q := submittedQuotation()
	q.Top = "7 Hari"
	q.Ot1 = &now

	_, err := NextSlot(ApproverTier2, q)
	assert.ErrorIs(t, err, ErrNotEligible)
	q.Ot2 = &now
	_, err = NextSlot(ApproverTier3, q)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestNextSlotRejectsUnsubmitted(t *testing.T) {
	q := submittedQuotation()
	q.Step = 5

	_, err := NextSlot(ApproverTier1, q)
	assert.ErrorIs(t, err, ErrNotEligible)

	q = submittedQuotation()
	q.StatusQuotationID = 1
	_, err = NextSlot(ApproverTier1, q)
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestNextSlotRejectsNonApprover(t *testing.T) {
	_, err := NextSlot(ApproverNone, submittedQuotation())
	assert.ErrorIs(t, err, ErrNotApprover)

	slot1Approved := submittedQuotation()
	now := time.Now()
	slot1Approved.Ot1 = &now
	_, err = NextSlot(ApproverTier1, slot1Approved)
	assert.ErrorIs(t, err, ErrNotEligible, "tier 1 cannot approve twice")
}
