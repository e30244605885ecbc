package interview

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectForNextRound_Promotion(t *testing.T) {
	f := newFixture()
	f.addCandidate("a@x.com")
	f.addResult("a@x.com", 1)
	ctx := context.Background()

	profile, err := f.service.SelectForNextRound(ctx, "a@x.com", "hr@x.com")
	require.NoError(t, err)
	assert.Equal(t, RoundPass, profile.FirstRoundStatus)
	assert.Equal(t, RoundPending, profile.SecondRoundStatus)
	assert.Equal(t, 2, profile.CurrentRound)
	assert.Equal(t, OverallInProgress, profile.OverallStatus)
	assert.Equal(t, "hr@x.com", profile.DecisionMadeBy)
	require.NotNil(t, profile.LastDecisionAt)
	assert.Equal(t, f.now, *profile.LastDecisionAt)
}

func TestSelectForNextRound_FinalizesHire(t *testing.T) {
	f := newFixture()
	f.addCandidate("a@x.com")
	f.addResult("a@x.com", 1)
	ctx := context.Background()

	_, err := f.service.SelectForNextRound(ctx, "a@x.com", "hr@x.com")
	require.NoError(t, err)

	profile, err := f.service.SelectForNextRound(ctx, "a@x.com", "hr@x.com")
	require.NoError(t, err)
	assert.Equal(t, RoundPass, profile.SecondRoundStatus)
	assert.Equal(t, StatusSelected, profile.InterviewStatus)
	assert.Equal(t, OverallCompleted, profile.OverallStatus)
}

func TestSelectForNextRound_InvalidStates(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
	}{
		{"first round failed", RoundFail, ""},
		{"already hired", RoundPass, RoundPass},
		{"already rejected in second", RoundPass, RoundFail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			p := f.addCandidate("a@x.com")
			p.FirstRoundStatus = tt.first
			p.SecondRoundStatus = tt.second
			f.addResult("a@x.com", 1)

			_, err := f.service.SelectForNextRound(context.Background(), "a@x.com", "hr@x.com")
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestDecisions_SharedPreconditions(t *testing.T) {
	t.Run("candidate missing", func(t *testing.T) {
		f := newFixture()
		_, err := f.service.SelectForNextRound(context.Background(), "ghost@x.com", "hr@x.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("no completed interview", func(t *testing.T) {
		f := newFixture()
		f.addCandidate("a@x.com")
		_, err := f.service.SelectForNextRound(context.Background(), "a@x.com", "hr@x.com")
		assert.ErrorIs(t, err, ErrInvalidState)
		_, err = f.service.Reject(context.Background(), "a@x.com", "hr@x.com")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("zero attempts", func(t *testing.T) {
		f := newFixture()
		f.addCandidate("a@x.com")
		f.addResult("a@x.com", 0)
		_, err := f.service.SelectForNextRound(context.Background(), "a@x.com", "hr@x.com")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("interview pending completion blocks decisions", func(t *testing.T) {
		f := newFixture()
		p := f.addCandidate("a@x.com")
		p.InterviewStatus = StatusScheduled
		f.addResult("a@x.com", 1)
		_, err := f.service.SelectForNextRound(context.Background(), "a@x.com", "hr@x.com")
		assert.ErrorIs(t, err, ErrInvalidState)
		_, err = f.service.Reject(context.Background(), "a@x.com", "hr@x.com")
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestReject(t *testing.T) {
	t.Run("first round", func(t *testing.T) {
		f := newFixture()
		f.addCandidate("a@x.com")
		f.addResult("a@x.com", 1)

		profile, err := f.service.Reject(context.Background(), "a@x.com", "hr@x.com")
		require.NoError(t, err)
		assert.Equal(t, RoundFail, profile.FirstRoundStatus)
		assert.Equal(t, StatusRejected, profile.InterviewStatus)
		assert.Equal(t, "hr@x.com", profile.DecisionMadeBy)
	})

	t.Run("second round", func(t *testing.T) {
		f := newFixture()
		p := f.addCandidate("a@x.com")
		p.FirstRoundStatus = RoundPass
		p.SecondRoundStatus = RoundPending
		f.addResult("a@x.com", 1)

		profile, err := f.service.Reject(context.Background(), "a@x.com", "hr@x.com")
		require.NoError(t, err)
		assert.Equal(t, RoundFail, profile.SecondRoundStatus)
		assert.Equal(t, StatusRejected, profile.InterviewStatus)
	})

	t.Run("already rejected", func(t *testing.T) {
		f := newFixture()
		p := f.addCandidate("a@x.com")
		p.FirstRoundStatus = RoundFail
		f.addResult("a@x.com", 1)

		_, err := f.service.Reject(context.Background(), "a@x.com", "hr@x.com")
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

// Second round status must never be set while the first round is undecided
// or failed.
func TestRoundInvariant(t *testing.T) {
	f := newFixture()
	f.addCandidate("a@x.com")
	f.addResult("a@x.com", 1)
	ctx := context.Background()

	_, err := f.service.Reject(ctx, "a@x.com", "hr@x.com")
	require.NoError(t, err)

	profile, err := f.store.GetProfile(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Empty(t, profile.SecondRoundStatus)

	_, err = f.service.ScheduleSecondRound(ctx, "a@x.com", "lead@x.com", "Lead")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestScheduleSecondRound(t *testing.T) {
	t.Run("requires first round pass", func(t *testing.T) {
		f := newFixture()
		f.addCandidate("a@x.com")
		_, err := f.service.ScheduleSecondRound(context.Background(), "a@x.com", "lead@x.com", "Lead")
		assert.ErrorIs(t, err, ErrInvalidState)
	})

	t.Run("assigns interviewer", func(t *testing.T) {
		f := newFixture()
		p := f.addCandidate("a@x.com")
		p.FirstRoundStatus = RoundPass
		p.SecondRoundStatus = RoundPending

		profile, err := f.service.ScheduleSecondRound(context.Background(), "a@x.com", "lead@x.com", "Lead")
		require.NoError(t, err)
		assert.Equal(t, RoundScheduled, profile.SecondRoundStatus)
		assert.Equal(t, 2, profile.CurrentRound)
		assert.Equal(t, "lead@x.com", profile.InterviewerEmail)
		assert.Equal(t, "Lead", profile.InterviewerName)
	})

	t.Run("second round already resolved", func(t *testing.T) {
		f := newFixture()
		p := f.addCandidate("a@x.com")
		p.FirstRoundStatus = RoundPass
		p.SecondRoundStatus = RoundPass

		_, err := f.service.ScheduleSecondRound(context.Background(), "a@x.com", "lead@x.com", "Lead")
		assert.ErrorIs(t, err, ErrInvalidState)
	})
}

func TestDashboardStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("pending by default", func(t *testing.T) {
		f := newFixture()
		f.addCandidate("a@x.com")
		status, err := f.service.DashboardStatus(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, OverallPending, status)
	})

	t.Run("scheduled when a meeting is active", func(t *testing.T) {
		f := newFixture()
		f.addCandidate("a@x.com")
		_, err := f.service.ScheduleInterview(ctx, "a@x.com", "hr@x.com")
		require.NoError(t, err)

		status, err := f.service.DashboardStatus(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, status)
	})

	t.Run("completed result wins over scheduled meeting", func(t *testing.T) {
		f := newFixture()
		f.addCandidate("a@x.com")
		f.addResult("a@x.com", 1)
		_, err := f.service.ScheduleInterview(ctx, "a@x.com", "hr@x.com")
		require.NoError(t, err)

		status, err := f.service.DashboardStatus(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, OverallCompleted, status)
	})
}
