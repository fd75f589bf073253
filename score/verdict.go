package score

// Tier is a cosmetic rating label for a finished contest.
type Tier string

// Tiers for a partial score, by fraction of the maximum.
const (
	// TierParticipant is under a quarter of the maximum score.
	TierParticipant Tier = "Participant"
	// TierPupil is under half of the maximum score.
	TierPupil Tier = "Pupil"
	// TierSpecialist is under three quarters of the maximum score.
	TierSpecialist Tier = "Specialist"
	// TierExpert is any other partial score.
	TierExpert Tier = "Expert"
)

// Tiers for a full score, by effective time.
const (
	// TierCandidateMaster is a full score in 70 minutes or more.
	TierCandidateMaster Tier = "Candidate Master"
	// TierMaster is a full score in under 70 minutes.
	TierMaster Tier = "Master"
	// TierGrandmaster is a full score in under 45 minutes.
	TierGrandmaster Tier = "Grandmaster"
)

type ratioStep struct {
	below float64
	tier  Tier
}

// Partial-score ladder, by fraction of the maximum score.
var ratioLadder = []ratioStep{
	{0.25, TierParticipant},
	{0.5, TierPupil},
	{0.75, TierSpecialist},
}

type timeStep struct {
	below int
	tier  Tier
}

// Full-score ladder, by effective minutes.
var timeLadder = []timeStep{
	{45, TierGrandmaster},
	{70, TierMaster},
}

// Verdict looks up the tier for a score and effective time.
func Verdict(total, max, effectiveMinutes int) Tier {
	if max <= 0 || total <= 0 {
		return TierParticipant
	}
	if total >= max {
		for _, step := range timeLadder {
			if effectiveMinutes < step.below {
				return step.tier
			}
		}
		return TierCandidateMaster
	}
	ratio := float64(total) / float64(max)
	for _, step := range ratioLadder {
		if ratio < step.below {
			return step.tier
		}
	}
	return TierExpert
}
