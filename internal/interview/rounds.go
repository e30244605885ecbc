package interview

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// Hiring round state machine. Both mutating decisions require a completed
// interview result and no interview currently pending completion.

// decisionProfile loads the candidate and checks the shared preconditions for
// SelectForNextRound and Reject.
func (s *Service) decisionProfile(ctx context.Context, candidateEmail string) (*CandidateProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, candidateEmail)
	if err != nil {
		return nil, err
	}
	if profile.InterviewStatus == StatusScheduled {
		return nil, fmt.Errorf("%w: interview is scheduled and pending completion", ErrInvalidState)
	}

	result, err := s.results.GetResult(ctx, candidateEmail)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: interview must be completed first", ErrInvalidState)
		}
		return nil, err
	}
	if result.Attempts < 1 {
		return nil, fmt.Errorf("%w: interview must be completed first", ErrInvalidState)
	}
	return profile, nil
}

// SelectForNextRound promotes a candidate: an undecided first round passes
// and opens the second round; a pending second round finalizes the hire. Any
// other combination is rejected.
func (s *Service) SelectForNextRound(ctx context.Context, candidateEmail, hrEmail string) (*CandidateProfile, error) {
	profile, err := s.decisionProfile(ctx, candidateEmail)
	if err != nil {
		return nil, err
	}

	switch {
	case profile.FirstRoundStatus == "":
		profile.FirstRoundStatus = RoundPass
		profile.SecondRoundStatus = RoundPending
		profile.CurrentRound = 2
		profile.OverallStatus = OverallInProgress
	case profile.FirstRoundStatus == RoundPass && profile.SecondRoundStatus == RoundPending:
		profile.SecondRoundStatus = RoundPass
		profile.InterviewStatus = StatusSelected
		profile.OverallStatus = OverallCompleted
	default:
		return nil, fmt.Errorf("%w: invalid round state for selection", ErrInvalidState)
	}

	s.stampDecision(profile, hrEmail)
	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	log.Printf("[Rounds] %s selected by %s (round %d)", candidateEmail, hrEmail, profile.CurrentRound)
	return profile, nil
}

// Reject fails the candidate's current round, symmetric to SelectForNextRound.
func (s *Service) Reject(ctx context.Context, candidateEmail, hrEmail string) (*CandidateProfile, error) {
	profile, err := s.decisionProfile(ctx, candidateEmail)
	if err != nil {
		return nil, err
	}

	switch {
	case profile.FirstRoundStatus == "":
		profile.FirstRoundStatus = RoundFail
		profile.InterviewStatus = StatusRejected
		profile.OverallStatus = OverallCompleted
	case profile.FirstRoundStatus == RoundPass && profile.SecondRoundStatus == RoundPending:
		profile.SecondRoundStatus = RoundFail
		profile.InterviewStatus = StatusRejected
		profile.OverallStatus = OverallCompleted
	default:
		return nil, fmt.Errorf("%w: invalid round state for rejection", ErrInvalidState)
	}

	s.stampDecision(profile, hrEmail)
	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	log.Printf("[Rounds] %s rejected by %s", candidateEmail, hrEmail)
	return profile, nil
}

// ScheduleSecondRound records the interviewer assignment. Only a candidate
// who passed the first round can have a second one scheduled; the second
// round status must not already be resolved.
func (s *Service) ScheduleSecondRound(ctx context.Context, candidateEmail, interviewerEmail, interviewerName string) (*CandidateProfile, error) {
	profile, err := s.profiles.GetProfile(ctx, candidateEmail)
	if err != nil {
		return nil, err
	}
	if profile.FirstRoundStatus != RoundPass {
		return nil, fmt.Errorf("%w: candidate has not passed the first round", ErrInvalidState)
	}
	if profile.SecondRoundStatus == RoundPass || profile.SecondRoundStatus == RoundFail {
		return nil, fmt.Errorf("%w: second round already resolved", ErrInvalidState)
	}

	profile.SecondRoundStatus = RoundScheduled
	profile.CurrentRound = 2
	profile.InterviewerEmail = interviewerEmail
	profile.InterviewerName = interviewerName
	if err := s.profiles.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}
	log.Printf("[Rounds] Second round for %s assigned to %s", candidateEmail, interviewerEmail)
	return profile, nil
}

func (s *Service) stampDecision(profile *CandidateProfile, hrEmail string) {
	now := s.now()
	profile.LastDecisionAt = &now
	profile.DecisionMadeBy = hrEmail
}

// DashboardStatus derives the display status for a candidate. A completed
// result takes priority over a scheduled meeting: a finished interview is
// the stronger signal.
func (s *Service) DashboardStatus(ctx context.Context, candidateEmail string) (string, error) {
	result, err := s.results.GetResult(ctx, candidateEmail)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return "", err
	}
	if result != nil && result.Attempts >= 1 {
		return OverallCompleted, nil
	}

	scheduled, err := s.meetings.FindScheduledMeetings(ctx, candidateEmail)
	if err != nil {
		return "", err
	}
	if len(scheduled) > 0 {
		return StatusScheduled, nil
	}
	return OverallPending, nil
}
